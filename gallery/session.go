package gallery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/types"
)

const persistTimeout = 5 * time.Second

// View is the filter-affecting part of the session state.
type View struct {
	Category      types.Category
	Search        string
	FavoritesOnly bool
}

// DefaultView shows everything.
func DefaultView() View {
	return View{Category: types.All}
}

// Options configures a Session.
type Options struct {
	PageSize  int
	LoadDelay time.Duration
	// Store receives favorites, history and language after each mutation.
	// Nil disables persistence.
	Store     types.StateStore
	Language  types.Language
	PagerOpts []PagerOption
}

// Session is the explicit state object behind a browser: catalog,
// favorites, view filters, pagination and language.
type Session struct {
	mu        sync.RWMutex
	catalog   *Catalog
	favorites *Favorites
	pager     *Pager
	view      View
	lang      types.Language
	store     types.StateStore
}

// NewSession wires a session around catalog.
func NewSession(catalog *Catalog, opts Options) *Session {
	lang := opts.Language
	if lang == "" {
		lang = types.English
	}
	s := &Session{
		catalog:   catalog,
		favorites: NewFavorites(nil),
		pager:     NewPager(opts.PageSize, opts.LoadDelay, opts.PagerOpts...),
		view:      DefaultView(),
		lang:      lang,
		store:     opts.Store,
	}
	catalog.Observe(s.onCatalogChange)
	return s
}

// Restore reads favorites, history and language back from the store.
// Each value is optional; a failed read is logged and the default kept.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if ids, ok, err := s.store.LoadFavorites(ctx); err != nil {
		logging.Warn("Restore favorites failed", "error", err)
		keep(fmt.Errorf("load favorites: %w", err))
	} else if ok {
		s.favorites.replace(ids)
	}

	if items, ok, err := s.store.LoadHistory(ctx); err != nil {
		logging.Warn("Restore history failed", "error", err)
		keep(fmt.Errorf("load history: %w", err))
	} else if ok {
		s.catalog.restoreHistory(items)
	}

	if lang, ok, err := s.store.LoadLanguage(ctx); err != nil {
		logging.Warn("Restore language failed", "error", err)
		keep(fmt.Errorf("load language: %w", err))
	} else if ok {
		s.mu.Lock()
		s.lang = lang
		s.mu.Unlock()
	}

	logging.Debug("Session restored",
		"favorites", s.favorites.Len(),
		"history", len(s.catalog.History()),
		"lang", s.Language())
	return firstErr
}

// Catalog returns the underlying catalog
func (s *Session) Catalog() *Catalog { return s.catalog }

// Pager returns the pagination controller
func (s *Session) Pager() *Pager { return s.pager }

// View returns a copy of the current view state
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetCategory changes the category filter and resets pagination.
func (s *Session) SetCategory(c types.Category) {
	s.mu.Lock()
	s.view.Category = c
	s.mu.Unlock()
	s.pager.Reset()
}

// SetSearch changes the search text and resets pagination.
func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	s.view.Search = text
	s.mu.Unlock()
	s.pager.Reset()
}

// SetFavoritesOnly changes the favorites gate and resets pagination.
func (s *Session) SetFavoritesOnly(on bool) {
	s.mu.Lock()
	s.view.FavoritesOnly = on
	s.mu.Unlock()
	s.pager.Reset()
}

// ToggleFavoritesOnly flips the favorites gate and returns the new value.
func (s *Session) ToggleFavoritesOnly() bool {
	s.mu.Lock()
	s.view.FavoritesOnly = !s.view.FavoritesOnly
	on := s.view.FavoritesOnly
	s.mu.Unlock()
	s.pager.Reset()
	return on
}

// Navigate applies a category deep link: the token is validated (unknown
// means All), favorites-only mode is left and pagination resets.
func (s *Session) Navigate(fragment string) types.Category {
	c := ParseFragment(fragment)
	s.mu.Lock()
	s.view.Category = c
	s.view.FavoritesOnly = false
	s.mu.Unlock()
	s.pager.Reset()
	return c
}

// ToggleFavorite flips id in the favorite set and persists the set.
func (s *Session) ToggleFavorite(id string) bool {
	on := s.favorites.Toggle(id)
	s.persist("favorites", func(ctx context.Context, st types.StateStore) error {
		return st.SaveFavorites(ctx, s.favorites.IDs())
	})
	return on
}

// IsFavorite reports whether id is favorited
func (s *Session) IsFavorite(id string) bool {
	return s.favorites.Has(id)
}

// Favorites returns the favorite set
func (s *Session) Favorites() *Favorites { return s.favorites }

// AppendGenerated adds a generated item to the history. The visible count
// is not reset.
func (s *Session) AppendGenerated(item types.Wallpaper) {
	s.catalog.AppendGenerated(item)
}

// Filtered returns the combined catalog run through the current filters.
func (s *Session) Filtered() []types.Wallpaper {
	v := s.View()
	return Filter(s.catalog.Combined(), v.Category, v.Search, s.favorites, v.FavoritesOnly)
}

// Visible returns the visible prefix of the filtered view.
func (s *Session) Visible() []types.Wallpaper {
	return VisiblePrefix(s.pager, s.Filtered())
}

// HasMore reports whether growth would reveal more items.
func (s *Session) HasMore() bool {
	return s.pager.HasMore(len(s.Filtered()))
}

// RequestGrowth asks the pager for another page using its own timer, for
// embedders without an event loop. done runs on the timer goroutine.
func (s *Session) RequestGrowth(done func()) bool {
	return s.pager.RequestGrowth(len(s.Filtered()), done)
}

// BeginGrowth starts a growth step for callers that run their own timer.
func (s *Session) BeginGrowth() (Ticket, bool) {
	return s.pager.Begin(len(s.Filtered()))
}

// CompleteGrowth finishes a step started with BeginGrowth.
func (s *Session) CompleteGrowth(t Ticket) bool {
	return s.pager.Complete(t)
}

// EmptyReason explains why the filtered view is empty, if it is.
func (s *Session) EmptyReason() EmptyReason {
	return ExplainEmpty(len(s.Filtered()), s.View().FavoritesOnly, s.favorites.Len())
}

// Language returns the UI language
func (s *Session) Language() types.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetLanguage changes and persists the UI language.
func (s *Session) SetLanguage(lang types.Language) {
	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()
	s.persist("language", func(ctx context.Context, st types.StateStore) error {
		return st.SaveLanguage(ctx, lang)
	})
}

// ToggleLanguage switches en/pt and returns the new language.
func (s *Session) ToggleLanguage() types.Language {
	next := s.Language().Toggle()
	s.SetLanguage(next)
	return next
}

func (s *Session) onCatalogChange(ch Change) {
	if ch.Kind != HistoryChanged {
		return
	}
	s.persist("history", func(ctx context.Context, st types.StateStore) error {
		return st.SaveHistory(ctx, ch.History)
	})
}

// persist writes through to the store. Failures are logged; the in-memory
// state stays authoritative.
func (s *Session) persist(what string, fn func(context.Context, types.StateStore) error) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := fn(ctx, s.store); err != nil {
		logging.Error("Persist failed", "what", what, "error", err)
	}
}
