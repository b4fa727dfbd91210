// ABOUTME: Lipgloss palettes and styles for the dark and light themes.
// ABOUTME: Every view takes a Styles value instead of reading globals.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/fittrack/internal/models"
)

type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	muted   lipgloss.Color
	success lipgloss.Color
	warning lipgloss.Color
	fg      lipgloss.Color
	subtle  lipgloss.Color
}

var (
	darkPalette = palette{
		primary: lipgloss.Color("#7AA2F7"),
		accent:  lipgloss.Color("#FF6B6B"),
		muted:   lipgloss.Color("#666666"),
		success: lipgloss.Color("#2ECC71"),
		warning: lipgloss.Color("#F39C12"),
		fg:      lipgloss.Color("#C0CAF5"),
		subtle:  lipgloss.Color("#414868"),
	}
	lightPalette = palette{
		primary: lipgloss.Color("#3451B2"),
		accent:  lipgloss.Color("#D03050"),
		muted:   lipgloss.Color("#8A8A8A"),
		success: lipgloss.Color("#18794E"),
		warning: lipgloss.Color("#AD5700"),
		fg:      lipgloss.Color("#1A1B26"),
		subtle:  lipgloss.Color("#C8CCD4"),
	}
)

// Styles is the set of styles one theme renders with.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Value   lipgloss.Style
	Good    lipgloss.Style
	Warn    lipgloss.Style
	Panel   lipgloss.Style
	Bar     lipgloss.Style
	Target  lipgloss.Style
	Timer   lipgloss.Style
	Paused  lipgloss.Style
	Insight lipgloss.Style
}

// StylesFor returns the styles for a theme. Unknown themes render dark.
func StylesFor(theme models.Theme) Styles {
	p := darkPalette
	if theme == models.ThemeLight {
		p = lightPalette
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.fg),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		Good: lipgloss.NewStyle().
			Foreground(p.success),
		Warn: lipgloss.NewStyle().
			Foreground(p.warning),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.subtle).
			Padding(0, 1),
		Bar: lipgloss.NewStyle().
			Foreground(p.primary),
		Target: lipgloss.NewStyle().
			Foreground(p.accent),
		Timer: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.success),
		Paused: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.warning),
		Insight: lipgloss.NewStyle().
			Foreground(p.fg).
			PaddingLeft(2),
	}
}
