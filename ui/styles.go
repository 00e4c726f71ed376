package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI palette
var (
	ColorForeground = lipgloss.AdaptiveColor{Light: "0", Dark: "255"}
	ColorIndigo     = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	ColorViolet     = lipgloss.AdaptiveColor{Light: "5", Dark: "13"}
	ColorCyan       = lipgloss.AdaptiveColor{Light: "6", Dark: "14"}
	ColorGreen      = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "8", Dark: "7"}
	ColorRose       = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	ColorAmber      = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}

	// Hero
	HeroStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Bold(true).
			Padding(0, 1)
	HeroHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorViolet).
				Bold(true)
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	// Category tab bar
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorViolet).
			Bold(true).
			Underline(true).
			Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)
	FavoritesTabStyle = lipgloss.NewStyle().
				Foreground(ColorRose).
				Bold(true).
				Padding(0, 1)

	// Cards
	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
	CardTitleSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorViolet).
				Bold(true)
	CardMetaStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
	HeartStyle = lipgloss.NewStyle().
			Foreground(ColorRose)
	SparkleStyle = lipgloss.NewStyle().
			Foreground(ColorAmber)

	// Preview
	DetailTitleStyle = lipgloss.NewStyle().
				Foreground(ColorViolet).
				Bold(true)
	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(12)
	DetailValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	// Empty states
	EmptyTitleStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Bold(true)
	EmptyHintStyle = lipgloss.NewStyle().
			Foreground(ColorIndigo)

	// AI studio
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorIndigo).
			Padding(1, 2)
	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorAmber).
			Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRose)
	ToastStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)
)
