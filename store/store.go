// Package store provides SQLite persistence for lumina session state.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/qyinm/lumina/types"
	_ "modernc.org/sqlite"
)

// Keys under which state is stored.
const (
	KeyFavorites = "favorites"
	KeyHistory   = "aiHistory"
	KeyLanguage  = "lang"
)

// Store is a key-value table on SQLite.
// All methods are safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface check
var _ types.StateStore = (*Store)(nil)

// Open creates a Store at dbPath, creating parent directories and the
// schema as needed. ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		name, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("name memory database: %w", err)
		}
		connStr = "file:" + name + "?mode=memory&cache=shared"
	} else if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// get returns the raw value for key; ok is false when the key is absent.
func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
// The lumina binaries only overwrite keys; Delete is for embedders resetting state.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.put(ctx, key, string(data))
}

// LoadFavorites returns the stored favorite ids.
func (s *Store) LoadFavorites(ctx context.Context) ([]string, bool, error) {
	var ids []string
	ok, err := s.getJSON(ctx, KeyFavorites, &ids)
	if err != nil || !ok {
		return nil, ok, err
	}
	return ids, true, nil
}

// SaveFavorites replaces the stored favorite ids.
func (s *Store) SaveFavorites(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.putJSON(ctx, KeyFavorites, ids)
}

// LoadHistory returns the stored generated wallpapers, newest first.
func (s *Store) LoadHistory(ctx context.Context) ([]types.Wallpaper, bool, error) {
	var records []wallpaperRecord
	ok, err := s.getJSON(ctx, KeyHistory, &records)
	if err != nil || !ok {
		return nil, ok, err
	}
	out := make([]types.Wallpaper, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		out = append(out, r.toWallpaper())
	}
	return out, true, nil
}

// SaveHistory replaces the stored generated wallpapers.
func (s *Store) SaveHistory(ctx context.Context, history []types.Wallpaper) error {
	records := make([]wallpaperRecord, len(history))
	for i, w := range history {
		records[i] = fromWallpaper(w)
	}
	return s.putJSON(ctx, KeyHistory, records)
}

// LoadLanguage returns the stored language. Unrecognised codes read as English.
func (s *Store) LoadLanguage(ctx context.Context) (types.Language, bool, error) {
	raw, ok, err := s.get(ctx, KeyLanguage)
	if err != nil || !ok {
		return "", false, err
	}
	return types.ParseLanguage(raw), true, nil
}

// SaveLanguage stores the language.
func (s *Store) SaveLanguage(ctx context.Context, lang types.Language) error {
	return s.put(ctx, KeyLanguage, string(lang))
}

type wallpaperRecord struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsGenerated bool     `json:"isGenerated,omitempty"`
}

func fromWallpaper(w types.Wallpaper) wallpaperRecord {
	return wallpaperRecord{
		ID:          w.ID(),
		URL:         w.URL(),
		Title:       w.Name(),
		Author:      w.Author(),
		Category:    string(w.Category()),
		Tags:        w.Tags(),
		IsGenerated: w.IsGenerated(),
	}
}

func (r wallpaperRecord) toWallpaper() types.Wallpaper {
	cat, ok := types.ParseCategory(r.Category)
	if !ok {
		cat = types.Abstract
	}
	return types.NewWallpaper(r.ID, r.URL, r.Title, r.Author, cat, r.Tags, r.IsGenerated)
}
