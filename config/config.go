// Package config reads lumina settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize  = 10
	DefaultLoadDelay = 800 * time.Millisecond
	DefaultModel     = "gemini-3-pro-image-preview"
)

// Config is shared by the TUI and the MCP servers.
type Config struct {
	DBPath      string
	APIKey      string
	Model       string
	Language    string
	Category    string
	PageSize    int
	LoadDelay   time.Duration
	CatalogURL  string
	DownloadDir string
	LogLevel    string
	LogFile     string
}

// Load reads LUMINA_* variables, applying defaults for anything unset or invalid.
func Load() Config {
	cfg := Config{
		DBPath:      strings.TrimSpace(os.Getenv("LUMINA_DB_PATH")),
		APIKey:      firstNonEmpty(os.Getenv("LUMINA_GEMINI_API_KEY"), os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")),
		Model:       strings.TrimSpace(os.Getenv("LUMINA_GEMINI_MODEL")),
		Language:    strings.TrimSpace(os.Getenv("LUMINA_LANG")),
		Category:    strings.TrimSpace(os.Getenv("LUMINA_CATEGORY")),
		PageSize:    ParseInt(os.Getenv("LUMINA_PAGE_SIZE"), DefaultPageSize),
		LoadDelay:   ParseDuration(os.Getenv("LUMINA_LOAD_DELAY"), DefaultLoadDelay),
		CatalogURL:  strings.TrimSpace(os.Getenv("LUMINA_CATALOG_URL")),
		DownloadDir: strings.TrimSpace(os.Getenv("LUMINA_DOWNLOAD_DIR")),
		LogLevel:    strings.TrimSpace(os.Getenv("LUMINA_LOG_LEVEL")),
		LogFile:     strings.TrimSpace(os.Getenv("LUMINA_LOG_FILE")),
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.LoadDelay < 0 {
		cfg.LoadDelay = DefaultLoadDelay
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DBPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DBPath = filepath.Join(home, ".lumina", "state.db")
		} else {
			cfg.DBPath = "lumina.db"
		}
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// ParseCSV splits a comma-separated list, dropping blanks.
func ParseCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func ParseBool(raw string, fallback bool) bool {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func ParseInt(raw string, fallback int) int {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func ParseFloat(raw string, fallback float64) float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func ParseDuration(raw string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
