package scraper

import (
	"fmt"
	"strconv"

	"github.com/qyinm/lumina/types"
)

// SeedSize is the number of wallpapers in the built-in catalog.
const SeedSize = 40

type seedEntry struct {
	title    string
	author   string
	category types.Category
	tags     []string
}

var seedBase = []seedEntry{
	{"Neon Horizon", "Lumina Studio", types.Cyberpunk, []string{"neon", "city"}},
	{"Arctic Silence", "Nature Captured", types.Nature, []string{"snow", "mountain"}},
	{"Flow of Gold", "Abstract Minds", types.Abstract, []string{"gold", "liquid"}},
	{"Zen Void", "Minimalist", types.Minimal, []string{"black", "dot"}},
	{"Interstellar Drift", "Galactic Art", types.Space, []string{"stars", "nebula"}},
	{"Brutalist Dream", "ArchViz", types.Architecture, []string{"concrete", "shadow"}},
	{"Ethereal Tiger", "Wild Heart", types.Animals, []string{"tiger", "magic"}},
	{"Desert Mirage", "Nature Captured", types.Nature, []string{"sand", "sun"}},
}

// SeedURL is the picture address of seed wallpaper i.
func SeedURL(i int) string {
	return fmt.Sprintf("https://picsum.photos/seed/wall%d/1080/1920", i)
}

// Seed returns the built-in catalog: eight hand-picked wallpapers followed
// by variants of them numbered 9 to 40.
func Seed() []types.Wallpaper {
	out := make([]types.Wallpaper, 0, SeedSize)
	for i := 1; i <= SeedSize; i++ {
		base := seedBase[(i-1)%len(seedBase)]
		title := base.title
		if i > len(seedBase) {
			title = fmt.Sprintf("%s %d", base.title, i)
		}
		out = append(out, types.NewWallpaper(
			strconv.Itoa(i), SeedURL(i), title, base.author,
			base.category, base.tags, false,
		))
	}
	return out
}
