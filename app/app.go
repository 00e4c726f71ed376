// Package app assembles the collaborators shared by the TUI and the MCP
// servers from a config.Config.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/qyinm/lumina/config"
	"github.com/qyinm/lumina/gallery"
	"github.com/qyinm/lumina/genai"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/scraper"
	"github.com/qyinm/lumina/store"
	"github.com/qyinm/lumina/types"
)

const catalogTimeout = 15 * time.Second

// App holds the wired collaborators. Close releases the store.
type App struct {
	Store     *store.Store
	Source    types.WallpaperSource
	Catalog   *gallery.Catalog
	Session   *gallery.Session
	Images    *genai.Client
	Generator *gallery.Generator
}

// New opens the store, loads the baseline catalog, restores persisted
// state and applies cfg.Category as a deep link.
func New(ctx context.Context, cfg config.Config, opts ...gallery.PagerOption) (*App, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	source := NewSource(cfg.CatalogURL)
	baseline := LoadBaseline(ctx, source)

	lang := types.English
	if cfg.Language != "" {
		lang = types.ParseLanguage(cfg.Language)
	}

	catalog := gallery.NewCatalog(baseline, nil)
	session := gallery.NewSession(catalog, gallery.Options{
		PageSize:  cfg.PageSize,
		LoadDelay: cfg.LoadDelay,
		Store:     st,
		Language:  lang,
		PagerOpts: opts,
	})
	if err := session.Restore(ctx); err != nil {
		logging.Warn("Session restore incomplete", "error", err)
	}
	// An explicit language wins over the persisted one.
	if cfg.Language != "" && session.Language() != lang {
		session.SetLanguage(lang)
	}
	if cfg.Category != "" {
		session.Navigate(cfg.Category)
	}

	images := genai.New(cfg.APIKey, cfg.Model)
	logging.Info("App ready",
		"baseline", len(baseline),
		"history", len(catalog.History()),
		"lang", session.Language(),
		"credential", images.HasAPIKey())

	return &App{
		Store:     st,
		Source:    source,
		Catalog:   catalog,
		Session:   session,
		Images:    images,
		Generator: gallery.NewGenerator(images, session),
	}, nil
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}

// NewSource returns the remote gallery scraper for url, or the built-in
// seed catalog when url is empty.
func NewSource(url string) types.WallpaperSource {
	if url == "" {
		return scraper.Static(scraper.Seed())
	}
	return scraper.New(url)
}

// LoadBaseline reads the catalog from source, falling back to the seed
// catalog when the source fails or returns nothing.
func LoadBaseline(ctx context.Context, source types.WallpaperSource) []types.Wallpaper {
	ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
	defer cancel()

	items, err := source.GetCatalog(ctx)
	if err != nil {
		logging.Warn("Catalog load failed, using seed catalog", "error", err)
		return scraper.Seed()
	}
	if len(items) == 0 {
		logging.Warn("Catalog source returned no wallpapers, using seed catalog")
		return scraper.Seed()
	}
	return items
}
