package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/lumina/gallery"
	"github.com/qyinm/lumina/i18n"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/mcpsrv/dto"
	"github.com/qyinm/lumina/types"
	"github.com/sahilm/fuzzy"
)

const (
	defaultLimit = 25
	maxLimit     = 100
)

type wallpaperListArgs struct {
	Category      string `json:"category,omitempty" jsonschema:"Category token (e.g. Space) or deep link (#category=Space); empty means All"`
	Query         string `json:"query,omitempty" jsonschema:"Optional case-insensitive title/tag search"`
	FavoritesOnly bool   `json:"favorites_only,omitempty" jsonschema:"Only return favorited wallpapers"`
	Offset        int    `json:"offset,omitempty" jsonschema:"Optional pagination offset"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Optional page size limit"`
}

type wallpaperGetArgs struct {
	ID string `json:"id" jsonschema:"Wallpaper id"`
}

type categoryListArgs struct {
	Query  string `json:"query,omitempty" jsonschema:"Optional fuzzy category query"`
	Offset int    `json:"offset,omitempty" jsonschema:"Optional pagination offset"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Optional page size limit"`
}

type favoriteToggleArgs struct {
	ID string `json:"id" jsonschema:"Wallpaper id"`
}

type historyListArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"Optional maximum number of items"`
}

type wallpaperGenerateArgs struct {
	Prompt      string `json:"prompt" jsonschema:"Description of the wallpaper to generate"`
	Resolution  string `json:"resolution,omitempty" jsonschema:"1K, 2K or 4K (default 1K)"`
	AspectRatio string `json:"aspect_ratio,omitempty" jsonschema:"1:1, 9:16 or 16:9 (default 9:16)"`
}

type wallpaperListOutput struct {
	Category      string          `json:"category"`
	Query         string          `json:"query"`
	FavoritesOnly bool            `json:"favorites_only"`
	Offset        int             `json:"offset"`
	Limit         int             `json:"limit"`
	NextOffset    int             `json:"next_offset"`
	HasMore       bool            `json:"has_more"`
	Total         int             `json:"total"`
	Empty         string          `json:"empty_reason,omitempty"`
	Items         []dto.Wallpaper `json:"items"`
}

type wallpaperGetOutput struct {
	Item dto.Wallpaper `json:"item"`
}

type categoryListOutput struct {
	Query      string         `json:"query"`
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
	NextOffset int            `json:"next_offset"`
	HasMore    bool           `json:"has_more"`
	Total      int            `json:"total"`
	Items      []dto.Category `json:"items"`
}

type favoriteToggleOutput struct {
	ID       string `json:"id"`
	Favorite bool   `json:"is_favorite"`
	Count    int    `json:"favorites_count"`
}

type historyListOutput struct {
	Total int             `json:"total"`
	Items []dto.Wallpaper `json:"items"`
}

type wallpaperGenerateOutput struct {
	Item dto.Wallpaper `json:"item"`
}

type cacheClearOutput struct {
	Status   string `json:"status"`
	Baseline int    `json:"baseline"`
}

type ServerOptions struct {
	// Generator backs wallpaper_generate; the tool is registered only
	// when EnableGenerate is set and the generator holds a credential.
	Generator      *gallery.Generator
	EnableGenerate bool
	// Source is cleared and re-read by cache_clear.
	Source      types.WallpaperSource
	EnableAdmin bool
	APIKey      string
}

type cacheClearSource interface {
	ClearCache()
}

func NewServer(session *gallery.Session, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "lumina", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "wallpaper_list",
		Description: "List wallpapers filtered by category, search text and favorites.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args wallpaperListArgs) (*mcp.CallToolResult, wallpaperListOutput, error) {
		return wallpaperListHandler(ctx, req, args, session)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "wallpaper_get",
		Description: "Get a wallpaper by id, including its full image URL.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args wallpaperGetArgs) (*mcp.CallToolResult, wallpaperGetOutput, error) {
		return wallpaperGetHandler(ctx, req, args, session)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "category_list",
		Description: "List wallpaper categories with item counts.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args categoryListArgs) (*mcp.CallToolResult, categoryListOutput, error) {
		return categoryListHandler(ctx, req, args, session)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "favorite_toggle",
		Description: "Add or remove a wallpaper from favorites.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args favoriteToggleArgs) (*mcp.CallToolResult, favoriteToggleOutput, error) {
		return favoriteToggleHandler(ctx, req, args, session)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "history_list",
		Description: "List generated wallpapers, newest first.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args historyListArgs) (*mcp.CallToolResult, historyListOutput, error) {
		return historyListHandler(ctx, req, args, session)
	})

	if opts.EnableGenerate && opts.Generator != nil && opts.Generator.HasCredential() {
		gen := opts.Generator
		mcp.AddTool(server, &mcp.Tool{
			Name:        "wallpaper_generate",
			Description: "Generate a wallpaper from a text prompt.",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args wallpaperGenerateArgs) (*mcp.CallToolResult, wallpaperGenerateOutput, error) {
			return wallpaperGenerateHandler(ctx, req, args, gen)
		})
	}

	if opts.EnableAdmin && strings.TrimSpace(opts.APIKey) != "" {
		source := opts.Source
		mcp.AddTool(server, &mcp.Tool{
			Name:        "cache_clear",
			Description: "Clear the catalog cache and reload the baseline (admin).",
		}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, cacheClearOutput, error) {
			return cacheClearHandler(ctx, req, source, session)
		})
	}

	return server
}

func wallpaperListHandler(_ context.Context, _ *mcp.CallToolRequest, args wallpaperListArgs, session *gallery.Session) (*mcp.CallToolResult, wallpaperListOutput, error) {
	category, err := parseCategory(args.Category)
	if err != nil {
		return errorToolResult(err.Error()), wallpaperListOutput{}, nil
	}

	favorites := session.Favorites()
	filtered := gallery.Filter(session.Catalog().Combined(), category, args.Query, favorites, args.FavoritesOnly)
	offset, limit, end := pageWindow(len(filtered), args.Offset, args.Limit)

	out := wallpaperListOutput{
		Category:      category.String(),
		Query:         args.Query,
		FavoritesOnly: args.FavoritesOnly,
		Offset:        offset,
		Limit:         limit,
		NextOffset:    nextOffset(len(filtered), end),
		HasMore:       end < len(filtered),
		Total:         len(filtered),
		Items:         dto.FromWallpapers(filtered[offset:end], favorites),
	}
	if reason := gallery.ExplainEmpty(len(filtered), args.FavoritesOnly, favorites.Len()); reason != gallery.EmptyNone {
		out.Empty = reason.String()
	}
	return nil, out, nil
}

func wallpaperGetHandler(_ context.Context, _ *mcp.CallToolRequest, args wallpaperGetArgs, session *gallery.Session) (*mcp.CallToolResult, wallpaperGetOutput, error) {
	id := strings.TrimSpace(args.ID)
	if id == "" {
		return errorToolResult("id is required"), wallpaperGetOutput{}, nil
	}

	w, ok := session.Catalog().Lookup(id)
	if !ok {
		return errorToolResult(fmt.Sprintf("wallpaper %q not found", id)), wallpaperGetOutput{}, nil
	}
	return nil, wallpaperGetOutput{Item: dto.FromWallpaper(w, session.IsFavorite(id))}, nil
}

func categoryListHandler(_ context.Context, _ *mcp.CallToolRequest, args categoryListArgs, session *gallery.Session) (*mcp.CallToolResult, categoryListOutput, error) {
	tr := i18n.New(session.Language())
	combined := session.Catalog().Combined()
	counts := make(map[types.Category]int, len(types.AllCategories))
	for _, w := range combined {
		counts[w.Category()]++
	}
	counts[types.All] = len(combined)

	ranked := rankCategories(args.Query, tr)
	offset, limit, end := pageWindow(len(ranked), args.Offset, args.Limit)

	items := make([]dto.Category, 0, end-offset)
	for _, c := range ranked[offset:end] {
		items = append(items, dto.FromCategory(c, tr.Category(c), counts[c]))
	}

	return nil, categoryListOutput{
		Query:      args.Query,
		Offset:     offset,
		Limit:      limit,
		NextOffset: nextOffset(len(ranked), end),
		HasMore:    end < len(ranked),
		Total:      len(ranked),
		Items:      items,
	}, nil
}

func favoriteToggleHandler(_ context.Context, _ *mcp.CallToolRequest, args favoriteToggleArgs, session *gallery.Session) (*mcp.CallToolResult, favoriteToggleOutput, error) {
	id := strings.TrimSpace(args.ID)
	if id == "" {
		return errorToolResult("id is required"), favoriteToggleOutput{}, nil
	}
	if _, ok := session.Catalog().Lookup(id); !ok {
		return errorToolResult(fmt.Sprintf("wallpaper %q not found", id)), favoriteToggleOutput{}, nil
	}

	on := session.ToggleFavorite(id)
	logging.Debug("Favorite toggled via MCP", "id", id, "favorite", on)
	return nil, favoriteToggleOutput{ID: id, Favorite: on, Count: session.Favorites().Len()}, nil
}

func historyListHandler(_ context.Context, _ *mcp.CallToolRequest, args historyListArgs, session *gallery.Session) (*mcp.CallToolResult, historyListOutput, error) {
	history := session.Catalog().History()
	if args.Limit > 0 && args.Limit < len(history) {
		history = history[:args.Limit]
	}
	return nil, historyListOutput{
		Total: len(history),
		Items: dto.FromWallpapers(history, session.Favorites()),
	}, nil
}

func wallpaperGenerateHandler(ctx context.Context, _ *mcp.CallToolRequest, args wallpaperGenerateArgs, gen *gallery.Generator) (*mcp.CallToolResult, wallpaperGenerateOutput, error) {
	in := gallery.GenerateInput{
		Prompt:      args.Prompt,
		Resolution:  types.Resolution(strings.ToUpper(strings.TrimSpace(args.Resolution))),
		AspectRatio: types.AspectRatio(strings.TrimSpace(args.AspectRatio)),
	}

	item, err := gen.Generate(ctx, in)
	switch {
	case err == nil:
		return nil, wallpaperGenerateOutput{Item: dto.FromWallpaper(item, false)}, nil
	case errors.Is(err, gallery.ErrInvalidRequest):
		return errorToolResult(err.Error()), wallpaperGenerateOutput{}, nil
	case errors.Is(err, gallery.ErrBusy):
		return errorToolResult("generation already in progress; retryable=true"), wallpaperGenerateOutput{}, nil
	case errors.Is(err, types.ErrInvalidCredential):
		return errorToolResult("image API key was rejected; retryable=false"), wallpaperGenerateOutput{}, nil
	default:
		return errorToolResult("generation failed"), wallpaperGenerateOutput{}, nil
	}
}

func cacheClearHandler(ctx context.Context, _ *mcp.CallToolRequest, source types.WallpaperSource, session *gallery.Session) (*mcp.CallToolResult, cacheClearOutput, error) {
	clearable, ok := source.(cacheClearSource)
	if !ok {
		return errorToolResult("cache clear is not supported by this source"), cacheClearOutput{}, nil
	}
	clearable.ClearCache()

	items, err := source.GetCatalog(ctx)
	if err != nil {
		logging.Warn("Catalog reload failed", "error", err)
		return errorToolResult("catalog reload failed"), cacheClearOutput{}, nil
	}
	session.Catalog().SetBaseline(items)
	return nil, cacheClearOutput{Status: "ok", Baseline: len(items)}, nil
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// parseCategory accepts a category token or a "#category=" deep link.
func parseCategory(raw string) (types.Category, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return types.All, nil
	}
	if c, ok := types.ParseCategory(v); ok {
		return c, nil
	}
	if c, ok := gallery.ParseFragmentOK(v); ok {
		return c, nil
	}
	tokens := make([]string, 0, len(types.AllCategories))
	for _, c := range types.AllCategories {
		tokens = append(tokens, c.String())
	}
	return types.All, fmt.Errorf("invalid category %q; expected %s", raw, strings.Join(tokens, "|"))
}

// categoryNames feeds fuzzy matching with both the token and the
// localized name of each category.
type categoryNames struct {
	tr *i18n.Translator
}

func (n categoryNames) String(i int) string {
	c := types.AllCategories[i]
	return c.String() + " " + n.tr.Category(c)
}

func (n categoryNames) Len() int { return len(types.AllCategories) }

// rankCategories returns all categories in display order for an empty
// query, otherwise the fuzzy matches best first.
func rankCategories(query string, tr *i18n.Translator) []types.Category {
	q := strings.TrimSpace(query)
	if q == "" {
		return append([]types.Category(nil), types.AllCategories...)
	}
	matches := fuzzy.FindFrom(q, categoryNames{tr: tr})
	out := make([]types.Category, 0, len(matches))
	for _, m := range matches {
		out = append(out, types.AllCategories[m.Index])
	}
	return out
}

func pageWindow(total, offset, limit int) (int, int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return offset, limit, end
}

func nextOffset(total, end int) int {
	if end < total {
		return end
	}
	return -1
}
