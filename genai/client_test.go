package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qyinm/lumina/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", "", WithBaseURL(srv.URL), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
}

func TestGenerate_Success(t *testing.T) {
	var got generateRequest
	var path, key string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"here"},{"inlineData":{"mimeType":"image/jpeg","data":"QUJD"}}]}}],"modelVersion":"m1"}`)
	})

	url, err := c.Generate(context.Background(), types.GenerateRequest{
		Prompt:      "aurora over fjord",
		AspectRatio: types.AspectLandscape,
		Resolution:  types.Res4K,
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,QUJD", url)

	assert.Equal(t, "/models/gemini-3-pro-image-preview:generateContent", path)
	assert.Equal(t, "test-key", key)
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Contains(t, got.Contents[0].Parts[0].Text, "aurora over fjord")
	assert.Equal(t, []string{"IMAGE"}, got.GenerationConfig.ResponseModalities)
	assert.Equal(t, "16:9", got.GenerationConfig.ImageConfig.AspectRatio)
	assert.Equal(t, "4K", got.GenerationConfig.ImageConfig.ImageSize)
}

func TestGenerate_DefaultsRequest(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"inlineData":{"data":"QUJD"}}]}}]}`)
	})

	url, err := c.Generate(context.Background(), types.GenerateRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QUJD", url)
	assert.Equal(t, "9:16", got.GenerationConfig.ImageConfig.AspectRatio)
	assert.Equal(t, "1K", got.GenerationConfig.ImageConfig.ImageSize)
}

func TestGenerate_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, types.ErrInvalidCredential},
		{"forbidden", http.StatusForbidden, `{}`, types.ErrInvalidCredential},
		{"entity not found", http.StatusNotFound, `{"error":{"message":"Requested entity was not found."}}`, types.ErrInvalidCredential},
		{"bad key", http.StatusBadRequest, `{"error":{"message":"API key not valid. Please pass a valid API key."}}`, types.ErrInvalidCredential},
		{"plain not found", http.StatusNotFound, `{"error":{"message":"model missing"}}`, types.ErrGenerationFailed},
		{"server error", http.StatusInternalServerError, `oops`, types.ErrGenerationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.Generate(context.Background(), types.GenerateRequest{Prompt: "x"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestGenerate_NoImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"I can't draw that"}]},"finishReason":"SAFETY"}]}`)
	})
	_, err := c.Generate(context.Background(), types.GenerateRequest{Prompt: "x"})
	assert.ErrorIs(t, err, types.ErrGenerationFailed)
}

func TestGenerate_MalformedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})
	_, err := c.Generate(context.Background(), types.GenerateRequest{Prompt: "x"})
	assert.ErrorIs(t, err, types.ErrGenerationFailed)
}

func TestGenerate_MissingKey(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	c.SetAPIKey("   ")
	assert.False(t, c.HasAPIKey())

	_, err := c.Generate(context.Background(), types.GenerateRequest{Prompt: "x"})
	assert.ErrorIs(t, err, types.ErrInvalidCredential)
	assert.Zero(t, calls)

	c.SetAPIKey("fresh")
	assert.True(t, c.HasAPIKey())
}

func TestGenerate_CanceledContext(t *testing.T) {
	c := New("k", "", WithLimiter(rate.NewLimiter(rate.Every(1<<62), 0)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Generate(ctx, types.GenerateRequest{Prompt: "x"})
	assert.ErrorIs(t, err, types.ErrGenerationFailed)
}

func TestNew_DefaultModel(t *testing.T) {
	assert.Equal(t, "gemini-3-pro-image-preview", New("", "").Model())
	assert.Equal(t, "custom", New("", "custom").Model())
}
