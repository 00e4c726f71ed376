package dto

import (
	"fmt"
	"strings"

	"github.com/qyinm/lumina/download"
	"github.com/qyinm/lumina/gallery"
	"github.com/qyinm/lumina/types"
)

// FromWallpaper keeps the full URL, including inline image data.
func FromWallpaper(w types.Wallpaper, favorite bool) Wallpaper {
	return Wallpaper{
		ID:        w.ID(),
		Title:     w.Name(),
		Author:    w.Author(),
		Category:  w.Category().String(),
		Tags:      append([]string{}, w.Tags()...),
		URL:       w.URL(),
		Generated: w.IsGenerated(),
		Favorite:  favorite,
		Filename:  download.Filename(w),
	}
}

// FromWallpaperSummary is FromWallpaper with data URLs cut down to their
// media type, for list responses.
func FromWallpaperSummary(w types.Wallpaper, favorite bool) Wallpaper {
	out := FromWallpaper(w, favorite)
	out.URL, out.Truncated = ShortURL(out.URL)
	return out
}

func FromWallpapers(items []types.Wallpaper, favorites gallery.FavoriteSet) []Wallpaper {
	out := make([]Wallpaper, 0, len(items))
	for _, w := range items {
		out = append(out, FromWallpaperSummary(w, favorites != nil && favorites.Has(w.ID())))
	}
	return out
}

func FromCategory(c types.Category, name string, count int) Category {
	return Category{
		Token:    c.String(),
		Name:     name,
		Fragment: gallery.Fragment(c),
		Count:    count,
	}
}

// ShortURL replaces the payload of a data URL with its decoded size.
func ShortURL(url string) (string, bool) {
	if !strings.HasPrefix(url, "data:") {
		return url, false
	}
	meta, payload, ok := strings.Cut(url, ",")
	if !ok {
		return url, false
	}
	return fmt.Sprintf("%s,<%d bytes>", meta, len(payload)*3/4), true
}
