// Package share hands a wallpaper link to the platform share sheet, or
// copies it to the clipboard when no share sheet exists.
package share

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/types"
)

// AppTitle is the title attached to every share payload.
const AppTitle = "Lumina Walls"

// ToastDuration is how long the copy confirmation stays visible.
const ToastDuration = 3000 * time.Millisecond

var (
	// ErrUnavailable is returned by a Presenter that cannot share on this platform.
	ErrUnavailable = errors.New("native share unavailable")
	// ErrClipboardFailed means the clipboard fallback could not be written.
	ErrClipboardFailed = errors.New("clipboard write failed")
)

// Payload is what a share sheet receives.
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// NewPayload builds the payload for w. shareTitle is the localized lead-in
// placed before the wallpaper title.
func NewPayload(w types.Wallpaper, shareTitle string) Payload {
	return Payload{
		Title: AppTitle,
		Text:  fmt.Sprintf("%s: %s", shareTitle, w.Name()),
		URL:   w.URL(),
	}
}

// Presenter is a native share sheet.
type Presenter interface {
	Present(ctx context.Context, p Payload) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the OS clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(text)
}

// Outcome reports which path a share took.
type Outcome int

const (
	// Presented means the native share sheet accepted the payload.
	Presented Outcome = iota
	// Copied means the link went to the clipboard; show a confirmation.
	Copied
	// Failed means nothing was shared. The failure has been logged.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Presented:
		return "presented"
	case Copied:
		return "copied"
	default:
		return "failed"
	}
}

// Service shares wallpapers. Native may be nil.
type Service struct {
	Native    Presenter
	Clipboard Clipboard
}

// New returns a Service using the system clipboard and no share sheet.
func New() *Service {
	return &Service{Clipboard: SystemClipboard{}}
}

// Share offers p to the share sheet and falls back to copying p.URL.
// Only a clipboard failure is returned as an error; a share sheet failure
// is logged and reported as Failed.
func (s *Service) Share(ctx context.Context, p Payload) (Outcome, error) {
	if s.Native != nil {
		err := s.Native.Present(ctx, p)
		if err == nil {
			return Presented, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			logging.Error("Error sharing", "url", p.URL, "error", err)
			return Failed, nil
		}
	}

	if s.Clipboard == nil {
		return Failed, ErrClipboardFailed
	}
	if err := s.Clipboard.WriteAll(p.URL); err != nil {
		logging.Error("Failed to copy", "url", p.URL, "error", err)
		return Failed, fmt.Errorf("%w: %v", ErrClipboardFailed, err)
	}
	return Copied, nil
}
