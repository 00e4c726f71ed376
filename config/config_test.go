package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"LUMINA_DB_PATH", "LUMINA_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY",
		"LUMINA_GEMINI_MODEL", "LUMINA_PAGE_SIZE", "LUMINA_LOAD_DELAY", "LUMINA_LOG_LEVEL",
		"LUMINA_DOWNLOAD_DIR",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
	if cfg.LoadDelay != DefaultLoadDelay {
		t.Errorf("LoadDelay = %v, want %v", cfg.LoadDelay, DefaultLoadDelay)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should have a default")
	}
	if cfg.DownloadDir != "." {
		t.Errorf("DownloadDir = %q, want .", cfg.DownloadDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LUMINA_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", " key-from-gemini ")
	t.Setenv("LUMINA_PAGE_SIZE", "25")
	t.Setenv("LUMINA_LOAD_DELAY", "0s")
	t.Setenv("LUMINA_CATEGORY", "Space")

	cfg := Load()
	if cfg.APIKey != "key-from-gemini" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "key-from-gemini")
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
	if cfg.LoadDelay != 0 {
		t.Errorf("LoadDelay = %v, want 0", cfg.LoadDelay)
	}
	if cfg.Category != "Space" {
		t.Errorf("Category = %q, want Space", cfg.Category)
	}
}

func TestParseHelpers(t *testing.T) {
	if got := ParseInt("x", 3); got != 3 {
		t.Errorf("ParseInt fallback = %d, want 3", got)
	}
	if got := ParseBool("true", false); !got {
		t.Error("ParseBool(true) = false")
	}
	if got := ParseFloat("", 1.5); got != 1.5 {
		t.Errorf("ParseFloat fallback = %v", got)
	}
	if got := ParseDuration("2s", time.Second); got != 2*time.Second {
		t.Errorf("ParseDuration = %v", got)
	}
	if got := ParseCSV(" a, ,b "); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("ParseCSV = %v", got)
	}
}
