// Package gallery holds the browsing core: the catalog of baseline and
// generated wallpapers, the filter pipeline, pagination and the session
// state that ties them together.
package gallery

import (
	"sync"

	"github.com/qyinm/lumina/types"
)

// HistoryLimit caps the generated-item history.
const HistoryLimit = 20

// ChangeKind says which part of the catalog changed
type ChangeKind int

const (
	BaselineChanged ChangeKind = iota
	HistoryChanged
)

// Change is passed to catalog observers after every mutation.
type Change struct {
	Kind    ChangeKind
	History []types.Wallpaper
}

// Catalog holds the baseline list and the bounded, newest-first history of
// generated items. Safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	baseline  []types.Wallpaper
	history   []types.Wallpaper
	observers []func(Change)
}

// NewCatalog creates a catalog. History is truncated to HistoryLimit.
func NewCatalog(baseline, history []types.Wallpaper) *Catalog {
	return &Catalog{
		baseline: append([]types.Wallpaper(nil), baseline...),
		history:  capHistory(append([]types.Wallpaper(nil), history...)),
	}
}

// Observe registers fn to run after every mutation. Observers run outside
// the catalog lock, in registration order.
func (c *Catalog) Observe(fn func(Change)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// SetBaseline replaces the baseline list. Called once the source has loaded.
func (c *Catalog) SetBaseline(items []types.Wallpaper) {
	c.mu.Lock()
	c.baseline = append([]types.Wallpaper(nil), items...)
	observers := c.observers
	history := c.snapshotHistoryLocked()
	c.mu.Unlock()

	notify(observers, Change{Kind: BaselineChanged, History: history})
}

// AppendGenerated puts item at the front of the history, dropping the
// oldest entries beyond HistoryLimit. It always succeeds.
func (c *Catalog) AppendGenerated(item types.Wallpaper) {
	c.mu.Lock()
	next := make([]types.Wallpaper, 0, len(c.history)+1)
	next = append(next, item)
	next = append(next, c.history...)
	c.history = capHistory(next)
	observers := c.observers
	history := c.snapshotHistoryLocked()
	c.mu.Unlock()

	notify(observers, Change{Kind: HistoryChanged, History: history})
}

// restoreHistory replaces the history without notifying observers; the
// value came from persistence, so writing it back is pointless.
func (c *Catalog) restoreHistory(items []types.Wallpaper) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = capHistory(append([]types.Wallpaper(nil), items...))
}

// Combined returns history items not present in the baseline (newest
// first, each id once) followed by the baseline in its original order.
func (c *Catalog) Combined() []types.Wallpaper {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(c.baseline)+len(c.history))
	for _, w := range c.baseline {
		seen[w.ID()] = struct{}{}
	}

	out := make([]types.Wallpaper, 0, len(c.baseline)+len(c.history))
	for _, w := range c.history {
		if _, ok := seen[w.ID()]; ok {
			continue
		}
		seen[w.ID()] = struct{}{}
		out = append(out, w)
	}
	return append(out, c.baseline...)
}

// History returns a copy of the generated-item history, newest first.
func (c *Catalog) History() []types.Wallpaper {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotHistoryLocked()
}

// Baseline returns a copy of the baseline list.
func (c *Catalog) Baseline() []types.Wallpaper {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]types.Wallpaper(nil), c.baseline...)
}

// Lookup finds an item by id in the combined catalog.
func (c *Catalog) Lookup(id string) (types.Wallpaper, bool) {
	for _, w := range c.Combined() {
		if w.ID() == id {
			return w, true
		}
	}
	return types.Wallpaper{}, false
}

func (c *Catalog) snapshotHistoryLocked() []types.Wallpaper {
	return append([]types.Wallpaper(nil), c.history...)
}

func capHistory(items []types.Wallpaper) []types.Wallpaper {
	if len(items) > HistoryLimit {
		return items[:HistoryLimit]
	}
	return items
}

func notify(observers []func(Change), ch Change) {
	for _, fn := range observers {
		fn(ch)
	}
}
