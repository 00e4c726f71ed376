package gallery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/qyinm/lumina/types"
)

func wp(id string, category types.Category, tags ...string) types.Wallpaper {
	return types.NewWallpaper(id, "https://img.example/"+id, "Wallpaper "+id, "tester", category, tags, false)
}

func titled(id, title string, category types.Category, tags ...string) types.Wallpaper {
	return types.NewWallpaper(id, "https://img.example/"+id, title, "tester", category, tags, false)
}

func ids(items []types.Wallpaper) []string {
	out := make([]string, 0, len(items))
	for _, w := range items {
		out = append(out, w.ID())
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func numbered(n int) []types.Wallpaper {
	out := make([]types.Wallpaper, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, wp(fmt.Sprintf("%d", i), types.Nature))
	}
	return out
}

// fakeClock collects scheduled callbacks until fire is called.
type fakeClock struct {
	mu      sync.Mutex
	pending []*fakeTimer
	delays  []time.Duration
}

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{fn: fn}
	c.pending = append(c.pending, t)
	c.delays = append(c.delays, d)
	return t
}

func (c *fakeClock) fire() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, t := range pending {
		if !t.stopped {
			t.fn()
		}
	}
}

func (c *fakeClock) scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// memStore is an in-memory types.StateStore.
type memStore struct {
	mu        sync.Mutex
	favorites []string
	history   []types.Wallpaper
	lang      types.Language
	hasFav    bool
	hasHist   bool
	hasLang   bool
	saves     int
	failLoad  bool
	failSave  bool
}

func (m *memStore) LoadFavorites(context.Context) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLoad {
		return nil, false, fmt.Errorf("load failed")
	}
	return append([]string(nil), m.favorites...), m.hasFav, nil
}

func (m *memStore) SaveFavorites(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.failSave {
		return fmt.Errorf("save failed")
	}
	m.favorites, m.hasFav = append([]string(nil), ids...), true
	return nil
}

func (m *memStore) LoadHistory(context.Context) ([]types.Wallpaper, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.Wallpaper(nil), m.history...), m.hasHist, nil
}

func (m *memStore) SaveHistory(_ context.Context, items []types.Wallpaper) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.failSave {
		return fmt.Errorf("save failed")
	}
	m.history, m.hasHist = append([]types.Wallpaper(nil), items...), true
	return nil
}

func (m *memStore) LoadLanguage(context.Context) (types.Language, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lang, m.hasLang, nil
}

func (m *memStore) SaveLanguage(_ context.Context, lang types.Language) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.lang, m.hasLang = lang, true
	return nil
}
