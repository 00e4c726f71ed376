package gallery

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/types"
)

const (
	generatedAuthor   = "Lumina AI"
	generatedCategory = types.Abstract
	maxTitleLen       = 20
	truncatedTitleLen = 17
)

var (
	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("generation already in progress")
	// ErrInvalidRequest wraps prompt/option validation failures.
	ErrInvalidRequest = errors.New("invalid generation request")
)

// GenerateInput is what the user supplies to the generation flow.
type GenerateInput struct {
	Prompt      string            `json:"prompt" validate:"required,max=500"`
	Resolution  types.Resolution  `json:"resolution" validate:"required,oneof=1K 2K 4K"`
	AspectRatio types.AspectRatio `json:"aspect_ratio" validate:"required,oneof=1:1 9:16 16:9"`
}

// credentialHolder is implemented by generators that carry an API key.
type credentialHolder interface {
	SetAPIKey(key string)
	HasAPIKey() bool
}

// Generator runs the generation flow: validate, call the image API, turn
// the result into a wallpaper and append it to the session history.
type Generator struct {
	mu            sync.Mutex
	client        types.ImageGenerator
	session       *Session
	validate      *validator.Validate
	hasCredential bool
	busy          bool
	newID         func() (string, error)
}

// NewGenerator creates a Generator. The credential flag starts from the
// client when it can report one, otherwise true.
func NewGenerator(client types.ImageGenerator, session *Session) *Generator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	hasCredential := true
	if holder, ok := client.(credentialHolder); ok {
		hasCredential = holder.HasAPIKey()
	}

	return &Generator{
		client:        client,
		session:       session,
		validate:      v,
		hasCredential: hasCredential,
		newID:         generateID,
	}
}

// HasCredential reports whether a usable credential is selected.
func (g *Generator) HasCredential() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hasCredential
}

// SetCredential selects a new credential.
func (g *Generator) SetCredential(key string) {
	key = strings.TrimSpace(key)
	if holder, ok := g.client.(credentialHolder); ok {
		holder.SetAPIKey(key)
	}
	g.mu.Lock()
	g.hasCredential = key != ""
	g.mu.Unlock()
}

// Busy reports whether a generation is in flight
func (g *Generator) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// Generate validates in, calls the image API and appends the new item.
// Errors wrap ErrInvalidRequest, ErrBusy, types.ErrInvalidCredential or
// types.ErrGenerationFailed; none of them touch catalog or view state.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (types.Wallpaper, error) {
	in.Prompt = strings.TrimSpace(in.Prompt)
	if in.Resolution == "" {
		in.Resolution = types.Res1K
	}
	if in.AspectRatio == "" {
		in.AspectRatio = types.AspectPortrait
	}
	if err := g.validateInput(in); err != nil {
		return types.Wallpaper{}, err
	}

	g.mu.Lock()
	if g.busy {
		g.mu.Unlock()
		return types.Wallpaper{}, ErrBusy
	}
	if !g.hasCredential {
		g.mu.Unlock()
		return types.Wallpaper{}, fmt.Errorf("no credential selected: %w", types.ErrInvalidCredential)
	}
	g.busy = true
	g.mu.Unlock()

	url, err := g.client.Generate(ctx, types.GenerateRequest{
		Prompt:      in.Prompt,
		AspectRatio: in.AspectRatio,
		Resolution:  in.Resolution,
	})

	g.mu.Lock()
	g.busy = false
	if errors.Is(err, types.ErrInvalidCredential) {
		g.hasCredential = false
	}
	g.mu.Unlock()

	if err != nil {
		logging.Warn("Generation failed", "resolution", in.Resolution, "error", err)
		if errors.Is(err, types.ErrInvalidCredential) || errors.Is(err, types.ErrGenerationFailed) {
			return types.Wallpaper{}, err
		}
		return types.Wallpaper{}, fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}

	id, err := g.newID()
	if err != nil {
		return types.Wallpaper{}, fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}

	item := types.NewWallpaper(
		id,
		url,
		GeneratedTitle(in.Prompt),
		generatedAuthor,
		generatedCategory,
		[]string{"ai", "generated", "custom", string(in.Resolution)},
		true,
	)
	if g.session != nil {
		g.session.AppendGenerated(item)
	}
	logging.Info("Wallpaper generated", "id", id, "resolution", in.Resolution)
	return item, nil
}

// GeneratedTitle shortens a prompt to a card title: prompts longer than 20
// characters keep their first 17 followed by "...".
func GeneratedTitle(prompt string) string {
	r := []rune(prompt)
	if len(r) > maxTitleLen {
		return string(r[:truncatedTitleLen]) + "..."
	}
	return prompt
}

func (g *Generator) validateInput(in GenerateInput) error {
	err := g.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Field()+" "+friendlyMessage(e))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// generateID returns "ai-<nanoid>".
func generateID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return "ai-" + id, nil
}
