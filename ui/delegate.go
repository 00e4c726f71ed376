package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/lumina/types"
)

// WallpaperDelegate renders wallpaper cards. IsFavorite decides the heart
// marker; CategoryName localizes the category label.
type WallpaperDelegate struct {
	IsFavorite   func(id string) bool
	CategoryName func(types.Category) string
}

// Height returns the height of a card (2 lines)
func (d WallpaperDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between cards
func (d WallpaperDelegate) Spacing() int {
	return 1
}

// Update is a no-op; the model handles card keys.
func (d WallpaperDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single wallpaper card
func (d WallpaperDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	wp, ok := item.(types.Wallpaper)
	if !ok {
		return
	}
	isSelected := index == m.Index()

	// Line 1: cursor + markers + title
	cursor := "  "
	if isSelected {
		cursor = "▌ "
	}
	markers := ""
	if d.IsFavorite != nil && d.IsFavorite(wp.ID()) {
		markers += HeartStyle.Render("♥") + " "
	}
	if wp.IsGenerated() {
		markers += SparkleStyle.Render("✦") + " "
	}

	titleWidth := m.Width() - lipgloss.Width(cursor) - lipgloss.Width(markers)
	title := truncate(wp.Name(), titleWidth)
	titleStyle := CardTitleStyle
	if isSelected {
		titleStyle = CardTitleSelectedStyle
	}
	line1 := cursor + markers + titleStyle.Render(title)

	// Line 2: author • category • #tags
	category := string(wp.Category())
	if d.CategoryName != nil {
		category = d.CategoryName(wp.Category())
	}
	parts := []string{}
	if wp.Author() != "" {
		parts = append(parts, wp.Author())
	}
	parts = append(parts, category)
	if tags := wp.Tags(); len(tags) > 0 {
		parts = append(parts, "#"+strings.Join(tags, " #"))
	}
	meta := truncate(strings.Join(parts, " • "), m.Width()-4)
	line2 := "    " + CardMetaStyle.Render(meta)

	fmt.Fprint(w, line1+"\n"+line2)
}

// truncate shortens s to width cells, ending with "…" when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
