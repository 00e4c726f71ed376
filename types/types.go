package types

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

// Category is one of the closed set of gallery categories.
// All is a wildcard used by the filter; it is never stored on a wallpaper.
type Category string

const (
	All          Category = "All"
	Nature       Category = "Nature"
	Abstract     Category = "Abstract"
	Minimal      Category = "Minimal"
	Cyberpunk    Category = "Cyberpunk"
	Space        Category = "Space"
	Architecture Category = "Architecture"
	Animals      Category = "Animals"
)

// AllCategories lists every category in display order, All first.
var AllCategories = []Category{
	All,
	Nature,
	Abstract,
	Minimal,
	Cyberpunk,
	Space,
	Architecture,
	Animals,
}

// String returns the category token
func (c Category) String() string { return string(c) }

// ParseCategory validates a token against the closed set.
// Matching is exact and case-sensitive.
func ParseCategory(token string) (Category, bool) {
	for _, c := range AllCategories {
		if string(c) == token {
			return c, true
		}
	}
	return All, false
}

// Resolution is the output size tier requested from the image generator
type Resolution string

const (
	Res1K Resolution = "1K"
	Res2K Resolution = "2K"
	Res4K Resolution = "4K"
)

// Resolutions lists the tiers in the order the UI cycles through them.
var Resolutions = []Resolution{Res1K, Res2K, Res4K}

// Label returns the human label shown next to the tier
func (r Resolution) Label() string {
	switch r {
	case Res1K:
		return "1080p"
	case Res2K:
		return "1440p"
	case Res4K:
		return "4K"
	default:
		return string(r)
	}
}

// Next returns the tier after r, wrapping around.
func (r Resolution) Next() Resolution {
	for i, v := range Resolutions {
		if v == r {
			return Resolutions[(i+1)%len(Resolutions)]
		}
	}
	return Res1K
}

// ParseResolution parses "1K", "2K" or "4K" (case-insensitive).
func ParseResolution(raw string) (Resolution, bool) {
	v := Resolution(strings.ToUpper(strings.TrimSpace(raw)))
	for _, r := range Resolutions {
		if r == v {
			return r, true
		}
	}
	return Res1K, false
}

// AspectRatio is the frame shape requested from the image generator
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectPortrait  AspectRatio = "9:16"
	AspectLandscape AspectRatio = "16:9"
)

// Language is a UI language code
type Language string

const (
	English    Language = "en"
	Portuguese Language = "pt"
)

// ParseLanguage returns the language for a code, defaulting to English.
func ParseLanguage(raw string) Language {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pt", "pt-br", "pt_br":
		return Portuguese
	default:
		return English
	}
}

// Toggle switches between the two supported languages
func (l Language) Toggle() Language {
	if l == Portuguese {
		return English
	}
	return Portuguese
}

// Wallpaper is a single gallery item. Values are immutable; an update
// replaces the whole value.
type Wallpaper struct {
	id        string
	url       string
	title     string
	author    string
	category  Category
	tags      []string
	generated bool
}

// NewWallpaper creates a new Wallpaper with the given fields
func NewWallpaper(id, url, title, author string, category Category, tags []string, generated bool) Wallpaper {
	return Wallpaper{
		id:        id,
		url:       url,
		title:     title,
		author:    author,
		category:  category,
		tags:      append([]string(nil), tags...),
		generated: generated,
	}
}

// Getters for Wallpaper fields
func (w Wallpaper) ID() string         { return w.id }
func (w Wallpaper) URL() string        { return w.url }
func (w Wallpaper) Name() string       { return w.title }
func (w Wallpaper) Author() string     { return w.author }
func (w Wallpaper) Category() Category { return w.category }
func (w Wallpaper) Tags() []string     { return append([]string(nil), w.tags...) }
func (w Wallpaper) IsGenerated() bool  { return w.generated }

// list.Item interface implementation
func (w Wallpaper) Title() string       { return w.title }
func (w Wallpaper) Description() string { return w.author }
func (w Wallpaper) FilterValue() string { return w.title }

// Compile-time check that Wallpaper implements list.Item
var _ list.Item = Wallpaper{}

// Generation errors. Callers branch on these with errors.Is.
var (
	// ErrInvalidCredential means the generator rejected the configured key.
	// The caller must drop its cached credential and ask for a new one.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrGenerationFailed covers every other generation failure.
	ErrGenerationFailed = errors.New("generation failed")
)

// GenerateRequest is the input to an ImageGenerator
type GenerateRequest struct {
	Prompt      string
	AspectRatio AspectRatio
	Resolution  Resolution
}

// WallpaperSource loads the baseline catalog.
type WallpaperSource interface {
	GetCatalog(ctx context.Context) ([]Wallpaper, error)
}

// ImageGenerator turns a prompt into an opaque image locator.
// Errors wrap ErrInvalidCredential or ErrGenerationFailed.
type ImageGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// StateStore is the key-value persistence collaborator. Each Load reports
// ok=false when nothing was persisted yet.
type StateStore interface {
	LoadFavorites(ctx context.Context) ([]string, bool, error)
	SaveFavorites(ctx context.Context, ids []string) error
	LoadHistory(ctx context.Context) ([]Wallpaper, bool, error)
	SaveHistory(ctx context.Context, items []Wallpaper) error
	LoadLanguage(ctx context.Context) (Language, bool, error)
	SaveLanguage(ctx context.Context, lang Language) error
}
