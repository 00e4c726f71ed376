// Package genai generates wallpapers with the Gemini image model.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/types"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-3-pro-image-preview"
	promptTemplate = "High-resolution, premium smartphone wallpaper: %s. Cinematic lighting, ultra-detailed, professionally shot."
)

// APIError is a non-200 response. It unwraps to types.ErrInvalidCredential
// or types.ErrGenerationFailed.
type APIError struct {
	Status int
	Body   string
	kind   error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error (status %d): %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.kind }

// Client implements types.ImageGenerator
type Client struct {
	mu      sync.RWMutex
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Compile-time interface check
var _ types.ImageGenerator = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another endpoint (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLimiter replaces the outbound rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// New creates a client. An empty model selects the default image model.
func New(apiKey, model string, opts ...Option) *Client {
	if model == "" {
		model = defaultModel
	}
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAPIKey replaces the credential used for later requests.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = strings.TrimSpace(key)
}

// HasAPIKey reports whether a credential is configured
func (c *Client) HasAPIKey() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey != ""
}

// Model returns the model name
func (c *Client) Model() string { return c.model }

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseModalities []string    `json:"responseModalities"`
	ImageConfig        imageConfig `json:"imageConfig"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio"`
	ImageSize   string `json:"imageSize"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// Generate asks the model for one image and returns it as a data URL.
func (c *Client) Generate(ctx context.Context, req types.GenerateRequest) (string, error) {
	c.mu.RLock()
	apiKey := c.apiKey
	c.mu.RUnlock()
	if apiKey == "" {
		return "", fmt.Errorf("gemini API key not configured: %w", types.ErrInvalidCredential)
	}

	if req.AspectRatio == "" {
		req.AspectRatio = types.AspectPortrait
	}
	if req.Resolution == "" {
		req.Resolution = types.Res1K
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %v: %w", err, types.ErrGenerationFailed)
	}

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, req.Prompt)}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig: imageConfig{
				AspectRatio: string(req.AspectRatio),
				ImageSize:   string(req.Resolution),
			},
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %v: %w", err, types.ErrGenerationFailed)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %v: %w", err, types.ErrGenerationFailed)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", apiKey)

	logging.Debug("Gemini image request starting", "model", c.model, "size", req.Resolution, "aspect", req.AspectRatio)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %v: %w", err, types.ErrGenerationFailed)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %v: %w", err, types.ErrGenerationFailed)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Body: string(respBody), kind: classify(resp.StatusCode, string(respBody))}
		logging.Error("Gemini API error", "status", resp.StatusCode, "body", string(respBody))
		return "", apiErr
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse response: %v: %w", err, types.ErrGenerationFailed)
	}

	if len(result.Candidates) > 0 {
		for _, p := range result.Candidates[0].Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			mime := p.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			logging.Info("Gemini image generated", "model", result.ModelVersion, "bytes", len(p.InlineData.Data))
			return "data:" + mime + ";base64," + p.InlineData.Data, nil
		}
		logging.Warn("Gemini returned no image", "finish_reason", result.Candidates[0].FinishReason)
	}

	return "", fmt.Errorf("no image was generated in the response parts: %w", types.ErrGenerationFailed)
}

// classify maps an error response to a generation error kind.
func classify(status int, body string) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return types.ErrInvalidCredential
	case status == http.StatusNotFound && strings.Contains(body, "Requested entity was not found"):
		return types.ErrInvalidCredential
	case status == http.StatusBadRequest && strings.Contains(body, "API key not valid"):
		return types.ErrInvalidCredential
	default:
		return types.ErrGenerationFailed
	}
}
