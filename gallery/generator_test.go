package gallery

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/qyinm/lumina/types"
)

type fakeImageAPI struct {
	url     string
	err     error
	calls   int
	lastReq types.GenerateRequest
	key     string
	block   chan struct{}
}

func (f *fakeImageAPI) Generate(_ context.Context, req types.GenerateRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func (f *fakeImageAPI) SetAPIKey(key string) { f.key = key }
func (f *fakeImageAPI) HasAPIKey() bool      { return f.key != "" }

func newTestGenerator(t *testing.T, api *fakeImageAPI) (*Generator, *Session) {
	t.Helper()
	s, _ := newTestSession(t, scenarioCatalog(), nil)
	g := NewGenerator(api, s)
	n := 0
	g.newID = func() (string, error) {
		n++
		return fmt.Sprintf("ai-test-%d", n), nil
	}
	return g, s
}

func TestGenerateAppendsItem(t *testing.T) {
	api := &fakeImageAPI{url: "data:image/png;base64,AAAA", key: "k"}
	g, s := newTestGenerator(t, api)

	item, err := g.Generate(context.Background(), GenerateInput{
		Prompt:     "  a quiet lake at dawn with mist  ",
		Resolution: types.Res2K,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if item.ID() != "ai-test-1" {
		t.Errorf("id = %q", item.ID())
	}
	if item.Name() != "a quiet lake at d..." {
		t.Errorf("title = %q, want %q", item.Name(), "a quiet lake at d...")
	}
	if item.Author() != "Lumina AI" || item.Category() != types.Abstract || !item.IsGenerated() {
		t.Errorf("unexpected item fields: %q %q %v", item.Author(), item.Category(), item.IsGenerated())
	}
	if strings.Join(item.Tags(), ",") != "ai,generated,custom,2K" {
		t.Errorf("tags = %v", item.Tags())
	}
	if api.lastReq.AspectRatio != types.AspectPortrait {
		t.Errorf("aspect = %q, want 9:16", api.lastReq.AspectRatio)
	}
	if api.lastReq.Prompt != "a quiet lake at dawn with mist" {
		t.Errorf("prompt not trimmed: %q", api.lastReq.Prompt)
	}
	if history := s.Catalog().History(); len(history) != 1 || history[0].ID() != item.ID() {
		t.Errorf("history = %v", ids(history))
	}
}

func TestGeneratedTitle(t *testing.T) {
	tests := map[string]string{
		"short":                   "short",
		"exactly twenty chars":    "exactly twenty chars",
		"twenty-one characters!":  "twenty-one charac...",
		"paisagem coração ártico": "paisagem coração ...",
	}
	for in, want := range tests {
		if got := GeneratedTitle(in); got != want {
			t.Errorf("GeneratedTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	api := &fakeImageAPI{url: "u", key: "k"}
	g, s := newTestGenerator(t, api)

	cases := []GenerateInput{
		{Prompt: "   "},
		{Prompt: strings.Repeat("x", 501)},
		{Prompt: "ok", Resolution: "8K"},
		{Prompt: "ok", AspectRatio: "4:3"},
	}
	for _, in := range cases {
		_, err := g.Generate(context.Background(), in)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Generate(%+v) err = %v, want ErrInvalidRequest", in, err)
		}
	}
	if api.calls != 0 {
		t.Errorf("API called %d times for invalid input", api.calls)
	}
	if len(s.Catalog().History()) != 0 {
		t.Error("history changed on validation failure")
	}

	_, err := g.Generate(context.Background(), GenerateInput{Prompt: ""})
	if err == nil || !strings.Contains(err.Error(), "prompt is required") {
		t.Errorf("err = %v, want message naming prompt", err)
	}
}

func TestGenerateInvalidCredentialRevokes(t *testing.T) {
	api := &fakeImageAPI{key: "k", err: fmt.Errorf("status 404: %w", types.ErrInvalidCredential)}
	g, _ := newTestGenerator(t, api)

	_, err := g.Generate(context.Background(), GenerateInput{Prompt: "city"})
	if !errors.Is(err, types.ErrInvalidCredential) {
		t.Fatalf("err = %v, want ErrInvalidCredential", err)
	}
	if g.HasCredential() {
		t.Error("credential flag still set")
	}
	if g.Busy() {
		t.Error("busy after failure")
	}

	_, err = g.Generate(context.Background(), GenerateInput{Prompt: "city"})
	if !errors.Is(err, types.ErrInvalidCredential) {
		t.Errorf("err = %v, want ErrInvalidCredential", err)
	}
	if api.calls != 1 {
		t.Errorf("API calls = %d, want 1", api.calls)
	}

	api.err = nil
	api.url = "u"
	g.SetCredential("new-key")
	if !g.HasCredential() || api.key != "new-key" {
		t.Fatal("SetCredential did not re-select")
	}
	if _, err := g.Generate(context.Background(), GenerateInput{Prompt: "city"}); err != nil {
		t.Fatalf("Generate after re-select: %v", err)
	}
}

func TestGenerateFailureIsRetryable(t *testing.T) {
	api := &fakeImageAPI{key: "k", err: errors.New("boom")}
	g, s := newTestGenerator(t, api)

	_, err := g.Generate(context.Background(), GenerateInput{Prompt: "forest"})
	if !errors.Is(err, types.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if !g.HasCredential() {
		t.Error("generic failure revoked the credential")
	}
	if len(s.Catalog().History()) != 0 {
		t.Error("history changed on failure")
	}
	if s.Pager().VisibleCount() != 10 {
		t.Error("pagination changed on failure")
	}
}

func TestGenerateWithoutCredential(t *testing.T) {
	api := &fakeImageAPI{url: "u"}
	g, _ := newTestGenerator(t, api)
	if g.HasCredential() {
		t.Fatal("credential reported without key")
	}
	_, err := g.Generate(context.Background(), GenerateInput{Prompt: "x"})
	if !errors.Is(err, types.ErrInvalidCredential) {
		t.Errorf("err = %v, want ErrInvalidCredential", err)
	}
	if api.calls != 0 {
		t.Error("API called without credential")
	}
}

func TestGenerateBusy(t *testing.T) {
	api := &fakeImageAPI{url: "u", key: "k", block: make(chan struct{})}
	g, _ := newTestGenerator(t, api)

	done := make(chan error, 1)
	go func() {
		_, err := g.Generate(context.Background(), GenerateInput{Prompt: "first"})
		done <- err
	}()

	for !g.Busy() {
		runtime.Gosched()
	}
	_, err := g.Generate(context.Background(), GenerateInput{Prompt: "second"})
	if !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}

	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("first Generate: %v", err)
	}
}
