package gallery

import (
	"strings"

	"github.com/qyinm/lumina/types"
)

// FavoriteSet is the membership test the filter needs.
type FavoriteSet interface {
	Has(id string) bool
}

// Filter returns the items that match the category, the search text and
// the favorites gate, in input order. A nil favorites set is empty.
func Filter(catalog []types.Wallpaper, category types.Category, search string, favorites FavoriteSet, favoritesOnly bool) []types.Wallpaper {
	query := strings.ToLower(search)
	out := make([]types.Wallpaper, 0, len(catalog))
	for _, w := range catalog {
		if category != types.All && w.Category() != category {
			continue
		}
		if !matchesSearch(w, query) {
			continue
		}
		if favoritesOnly && (favorites == nil || !favorites.Has(w.ID())) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// matchesSearch expects query already lower-cased.
func matchesSearch(w types.Wallpaper, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(w.Name()), query) {
		return true
	}
	for _, tag := range w.Tags() {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// EmptyReason explains an empty filtered view.
type EmptyReason int

const (
	// EmptyNone means the filtered view has items.
	EmptyNone EmptyReason = iota
	// EmptyNoFavorites means favorites-only is on and nothing is favorited.
	EmptyNoFavorites
	// EmptyNoMatches means the filters excluded everything.
	EmptyNoMatches
)

func (r EmptyReason) String() string {
	switch r {
	case EmptyNone:
		return "none"
	case EmptyNoFavorites:
		return "no_favorites"
	case EmptyNoMatches:
		return "no_matches"
	default:
		return "unknown"
	}
}

// ExplainEmpty classifies an empty result.
func ExplainEmpty(filteredLen int, favoritesOnly bool, favoriteCount int) EmptyReason {
	if filteredLen > 0 {
		return EmptyNone
	}
	if favoritesOnly && favoriteCount == 0 {
		return EmptyNoFavorites
	}
	return EmptyNoMatches
}
