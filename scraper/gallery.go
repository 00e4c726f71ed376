package scraper

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/qyinm/lumina/types"
)

// ErrChallenge is returned for bot-protection interstitials served in
// place of the gallery.
var ErrChallenge = errors.New("gallery blocked by bot challenge")

// ParseGallery parses a gallery page and returns its wallpapers in page order.
// An embedded hydration payload wins when present; otherwise each card is an
// element carrying data-wallpaper-id and data-category, with an <img> for the
// picture, .title and .author text, and comma-separated data-tags. Cards in
// unknown categories and repeated ids are skipped.
func ParseGallery(reader io.Reader) ([]types.Wallpaper, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if looksLikeChallenge(string(raw)) {
		return nil, ErrChallenge
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	if wallpapers, ok := parseHydration(doc); ok {
		return wallpapers, nil
	}
	return parseCards(doc), nil
}

func parseCards(doc *goquery.Document) []types.Wallpaper {
	var wallpapers []types.Wallpaper
	seen := make(map[string]struct{})

	doc.Find("[data-wallpaper-id]").Each(func(_ int, s *goquery.Selection) {
		id := strings.TrimSpace(s.AttrOr("data-wallpaper-id", ""))
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}

		category, ok := types.ParseCategory(strings.TrimSpace(s.AttrOr("data-category", "")))
		if !ok || category == types.All {
			return
		}

		// Picture: img src, falling back to data-src for lazy-loaded cards
		img := s.Find("img").First()
		url := img.AttrOr("src", "")
		if url == "" {
			url = img.AttrOr("data-src", "")
		}
		if url == "" {
			return
		}

		title := strings.TrimSpace(s.Find(".title").First().Text())
		if title == "" {
			title = strings.TrimSpace(img.AttrOr("alt", ""))
		}
		author := strings.TrimSpace(s.Find(".author").First().Text())

		seen[id] = struct{}{}
		wallpapers = append(wallpapers, types.NewWallpaper(
			id, url, title, author, category,
			parseTags(s.AttrOr("data-tags", "")),
			false,
		))
	})

	return wallpapers
}

// parseTags splits a comma-separated tag list, dropping empties.
func parseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
