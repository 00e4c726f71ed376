package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/types"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper implements types.WallpaperSource using an HTTP client and an in-memory cache.
type Scraper struct {
	url    string
	client *http.Client
	cache  map[string]cachedResult
	mu     sync.Mutex
}

type cachedResult struct {
	value     []types.Wallpaper
	timestamp time.Time
}

// Compile-time interface check
var _ types.WallpaperSource = (*Scraper)(nil)

// New creates a Scraper reading the gallery page at url.
func New(url string) *Scraper {
	return &Scraper{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: make(map[string]cachedResult),
	}
}

// URL returns the gallery page address.
func (s *Scraper) URL() string { return s.url }

// GetCatalog fetches and parses the gallery page. Results are cached until
// ClearCache.
func (s *Scraper) GetCatalog(ctx context.Context) ([]types.Wallpaper, error) {
	s.mu.Lock()
	if cached, ok := s.cache[s.url]; ok {
		s.mu.Unlock()
		return cached.value, nil
	}
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch gallery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	wallpapers, err := ParseGallery(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse gallery: %w", err)
	}
	logging.Info("Gallery fetched", "url", s.url, "items", len(wallpapers))

	s.mu.Lock()
	s.cache[s.url] = cachedResult{value: wallpapers, timestamp: time.Now()}
	s.mu.Unlock()
	return wallpapers, nil
}

// ClearCache clears the in-memory cache.
func (s *Scraper) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cachedResult)
}

// Static serves a fixed catalog. It is the source used when no gallery
// page is configured.
type Static []types.Wallpaper

// GetCatalog returns the fixed catalog.
func (s Static) GetCatalog(context.Context) ([]types.Wallpaper, error) {
	return []types.Wallpaper(s), nil
}
