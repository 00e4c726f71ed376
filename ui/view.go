package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/lumina/download"
	"github.com/qyinm/lumina/gallery"
	"github.com/qyinm/lumina/i18n"
	"github.com/qyinm/lumina/types"
)

// View renders the current view
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(HeroStyle.Render(m.tr.T(i18n.HeroTitle)+" ") + HeroHighlightStyle.Render(m.tr.T(i18n.HeroHighlight)))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(m.tr.T(i18n.HeroSubtitle)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderSearch())
	b.WriteString("\n")

	switch m.state {
	case PreviewView:
		b.WriteString(m.viewport.View())
	case StudioView:
		b.WriteString(m.renderStudio())
	case KeyView:
		b.WriteString(m.renderKeyEntry())
	default:
		b.WriteString(m.renderGallery())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTabs() string {
	active := m.session.View().Category
	tabs := make([]string, 0, len(types.AllCategories)+1)
	for i, c := range types.AllCategories {
		label := fmt.Sprintf("%d %s", i+1, m.tr.Category(c))
		if c == active {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	if m.session.View().FavoritesOnly {
		tabs = append(tabs, FavoritesTabStyle.Render("♥ "+m.tr.T(i18n.Favorites)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderSearch() string {
	if m.searching || m.search.Value() != "" {
		return m.search.View()
	}
	return StatusBarStyle.Render("/ " + m.tr.T(i18n.SearchPlaceholder))
}

func (m Model) renderGallery() string {
	switch m.session.EmptyReason() {
	case gallery.EmptyNoFavorites:
		return m.renderEmpty("♥ "+m.tr.T(i18n.NoFavorites), "F · "+m.tr.T(i18n.Discover))
	case gallery.EmptyNoMatches:
		return m.renderEmpty(m.tr.T(i18n.NoWallpapers), m.tr.T(i18n.TryAdjusting))
	}

	out := m.list.View()
	if m.session.Pager().Loading() {
		out += "\n" + m.spinner.View() + " " + m.tr.T(i18n.LoadMore)
	} else if m.session.HasMore() {
		out += "\n" + StatusBarStyle.Render("↓ m · "+m.tr.T(i18n.LoadMore))
	}
	return out
}

func (m Model) renderEmpty(title, hint string) string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		"",
		EmptyTitleStyle.Render(title),
		EmptyHintStyle.Render(hint),
	)
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
	}
	return block
}

func (m Model) renderPreview() string {
	w := m.selected
	var b strings.Builder

	title := w.Name()
	if w.IsGenerated() {
		title = SparkleStyle.Render("✦ ") + title
	}
	if m.session.IsFavorite(w.ID()) {
		title = HeartStyle.Render("♥ ") + title
	}
	b.WriteString(DetailTitleStyle.Render(title))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(DetailLabelStyle.Render(label))
		b.WriteString(DetailValueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Author", w.Author())
	row(m.tr.T(i18n.Categories), m.tr.Category(w.Category()))
	if tags := w.Tags(); len(tags) > 0 {
		row("Tags", "#"+strings.Join(tags, " #"))
	}
	row("URL", displayURL(w.URL()))
	row("File", download.Filename(w))

	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render(m.tr.T(i18n.FreeForUse)))
	b.WriteString("\n\n")
	b.WriteString(StatusBarStyle.Render("f ♥ · s " + m.tr.T(i18n.ShareTitle) + " · d " + m.tr.T(i18n.Download) + " · esc"))
	return b.String()
}

func (m Model) renderStudio() string {
	var b strings.Builder
	b.WriteString(DetailTitleStyle.Render("✦ "+m.tr.T(i18n.AIStudioTitle)) + " " + BadgeStyle.Render(m.tr.T(i18n.AIStudioExperimental)))
	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render(m.tr.T(i18n.AIStudioDescription)))
	b.WriteString("\n\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n\n")
	b.WriteString(DetailLabelStyle.Render(m.tr.T(i18n.Resolution)))
	b.WriteString(DetailValueStyle.Render(m.tr.Resolution(m.resolution)))
	b.WriteString(StatusBarStyle.Render("  ctrl+r"))
	b.WriteString("\n\n")

	if m.generating {
		b.WriteString(m.spinner.View() + " " + m.tr.T(i18n.Generating))
	} else {
		b.WriteString(StatusBarStyle.Render("enter · " + m.tr.T(i18n.Generate)))
	}
	b.WriteString("\n\n")

	b.WriteString(EmptyTitleStyle.Render(m.tr.T(i18n.RecentCreations)))
	b.WriteString("\n")
	history := m.session.Catalog().History()
	if len(history) == 0 {
		b.WriteString(StatusBarStyle.Render(m.tr.T(i18n.NoCreations)))
	}
	for i, w := range history {
		if i == 5 {
			b.WriteString(StatusBarStyle.Render(fmt.Sprintf("… +%d", len(history)-i)))
			break
		}
		b.WriteString(SparkleStyle.Render("✦ ") + CardTitleStyle.Render(w.Name()) + "\n")
	}

	return PanelStyle.Render(b.String())
}

func (m Model) renderKeyEntry() string {
	var b strings.Builder
	b.WriteString(DetailTitleStyle.Render(m.tr.T(i18n.SelectKey)))
	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render(m.tr.T(i18n.KeyRequired)))
	b.WriteString("\n\n")
	b.WriteString(m.keyInput.View())
	b.WriteString("\n\n")
	b.WriteString(StatusBarStyle.Render(m.tr.T(i18n.BillingInfo)))
	return PanelStyle.Render(b.String())
}

func (m Model) renderStatus() string {
	if m.toast != "" {
		return ToastStyle.Render("✓ " + m.toast)
	}
	if m.errMsg != "" {
		return ErrorStyle.Render("✗ " + m.errMsg)
	}
	status := m.tr.T(i18n.Showing, len(m.list.Items()), len(m.session.Filtered()))
	status += " · " + m.tr.T(i18n.LanguageName)
	if m.generator != nil && !m.generator.HasCredential() {
		status += " · K " + m.tr.T(i18n.SelectKey)
	}
	return StatusBarStyle.Render(status)
}

// displayURL shortens data URLs, which can be megabytes long.
func displayURL(url string) string {
	if strings.HasPrefix(url, "data:") {
		meta, payload, _ := strings.Cut(url, ",")
		return fmt.Sprintf("%s,… (%d KB)", meta, len(payload)*3/4/1024)
	}
	return url
}
