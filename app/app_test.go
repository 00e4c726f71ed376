package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qyinm/lumina/config"
	"github.com/qyinm/lumina/scraper"
	"github.com/qyinm/lumina/types"
)

type failingSource struct{}

func (failingSource) GetCatalog(context.Context) ([]types.Wallpaper, error) {
	return nil, errors.New("offline")
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DBPath:   filepath.Join(t.TempDir(), "state.db"),
		Model:    config.DefaultModel,
		PageSize: config.DefaultPageSize,
	}
}

func TestNewSeedCatalog(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Catalog.Baseline(), scraper.SeedSize)
	assert.Equal(t, types.English, a.Session.Language())
	assert.Equal(t, types.All, a.Session.View().Category)
	assert.False(t, a.Generator.HasCredential())
	assert.Len(t, a.Session.Visible(), config.DefaultPageSize)
}

func TestNewAppliesCategoryAndLanguage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Category = "#category=Space"
	cfg.Language = "pt-BR"
	cfg.APIKey = "sk-test"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, types.Space, a.Session.View().Category)
	assert.Equal(t, types.Portuguese, a.Session.Language())
	assert.True(t, a.Generator.HasCredential())
}

func TestNewRestoresPersistedState(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	a.Session.ToggleFavorite("3")
	a.Session.SetLanguage(types.Portuguese)
	require.NoError(t, a.Close())

	b, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()

	assert.True(t, b.Session.IsFavorite("3"))
	assert.Equal(t, types.Portuguese, b.Session.Language())
}

func TestNewSource(t *testing.T) {
	_, ok := NewSource("").(scraper.Static)
	assert.True(t, ok, "empty url should use the seed catalog")

	s, ok := NewSource("https://walls.example/gallery").(*scraper.Scraper)
	require.True(t, ok)
	assert.Equal(t, "https://walls.example/gallery", s.URL())
}

func TestLoadBaselineFallsBackToSeed(t *testing.T) {
	items := LoadBaseline(context.Background(), failingSource{})
	assert.Len(t, items, scraper.SeedSize)

	items = LoadBaseline(context.Background(), scraper.Static(nil))
	assert.Len(t, items, scraper.SeedSize)
}

func TestLoadBaselineFromGallery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "../testdata/gallery.html")
	}))
	defer srv.Close()

	items := LoadBaseline(context.Background(), NewSource(srv.URL))
	require.Len(t, items, 3)
	assert.Equal(t, "w-100", items[0].ID())
}
