package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/types"
)

// hydrationSelector finds the JSON state some gallery builds embed for
// client-side rendering.
const hydrationSelector = `script#lumina-gallery[type="application/json"]`

type hydrationItem struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type hydrationState struct {
	Wallpapers []hydrationItem `json:"wallpapers"`
}

// parseHydration reads the embedded state. ok is false when the page has
// none or it cannot be decoded, so the caller falls back to the cards.
func parseHydration(doc *goquery.Document) ([]types.Wallpaper, bool) {
	script := doc.Find(hydrationSelector).First()
	if script.Length() == 0 {
		return nil, false
	}

	var state hydrationState
	if err := json.Unmarshal([]byte(script.Text()), &state); err != nil {
		logging.Warn("Gallery hydration state unreadable", "error", err)
		return nil, false
	}

	wallpapers := make([]types.Wallpaper, 0, len(state.Wallpapers))
	seen := make(map[string]struct{})
	for _, it := range state.Wallpapers {
		id := strings.TrimSpace(it.ID)
		url := strings.TrimSpace(it.URL)
		if id == "" || url == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		category, ok := types.ParseCategory(strings.TrimSpace(it.Category))
		if !ok || category == types.All {
			continue
		}
		seen[id] = struct{}{}
		wallpapers = append(wallpapers, types.NewWallpaper(
			id, url, strings.TrimSpace(it.Title), strings.TrimSpace(it.Author),
			category, cleanTags(it.Tags), false,
		))
	}
	return wallpapers, true
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func looksLikeChallenge(html string) bool {
	s := strings.ToLower(html)
	return strings.Contains(s, "<title>just a moment...</title>") &&
		(strings.Contains(s, "cf-challenge") || strings.Contains(s, "_cf_chl_opt"))
}
