// Package ui implements the lynxdash terminal dashboard: the page router,
// the interactive ontology graph view, and the resource tables.
package ui

import (
	"hash/fnv"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light mode colors
	lightForeground = lipgloss.Color("#1a2b4a")
	lightPrimary    = lipgloss.Color("#2458b3")
	lightAccent     = lipgloss.Color("#0e9594")
	lightMuted      = lipgloss.Color("#8a94a6")
	lightBorder     = lipgloss.Color("#d4dae3")

	// Dark mode colors
	darkForeground = lipgloss.Color("#e8ecf2")
	darkPrimary    = lipgloss.Color("#6ea8ff")
	darkAccent     = lipgloss.Color("#2ee6a8")
	darkMuted      = lipgloss.Color("#5a6678")
	darkBorder     = lipgloss.Color("#333f52")

	// Semantic colors, same in both modes
	colorError   = lipgloss.Color("#e5484d")
	colorWarning = lipgloss.Color("#f5a524")
	colorSuccess = lipgloss.Color("#30a46c")

	// Node palette: ontology classes are colored by type.
	nodePalette = []lipgloss.Color{
		lipgloss.Color("#e57373"),
		lipgloss.Color("#4db6ac"),
		lipgloss.Color("#ffd54f"),
		lipgloss.Color("#ba68c8"),
		lipgloss.Color("#ff8a65"),
		lipgloss.Color("#64b5f6"),
	}
)

// Theme holds the active color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lightForeground,
		Primary:    lightPrimary,
		Accent:     lightAccent,
		Muted:      lightMuted,
		Border:     lightBorder,
	}
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: darkForeground,
		Primary:    darkPrimary,
		Accent:     darkAccent,
		Muted:      darkMuted,
		Border:     darkBorder,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured theme name. "auto" sniffs COLORFGBG the
// way terminals advertise their background, defaulting to dark.
func ThemeFor(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	}

	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bg, err := strconv.Atoi(parts[1]); err == nil && bg >= 7 && bg != 8 {
				return LightTheme()
			}
		}
	}
	return DarkTheme()
}

// Styles holds all styled components used across pages.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	TabBar  lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style
	Content lipgloss.Style

	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Spinner lipgloss.Style

	Edge         lipgloss.Style
	NodeLabel    lipgloss.Style
	NodeSelected lipgloss.Style
	Banner       lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		TabBar: lipgloss.NewStyle().Padding(0, 2),

		Tab: lipgloss.NewStyle().Foreground(theme.Muted).Padding(0, 1),

		TabOn: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Content: lipgloss.NewStyle().Padding(1, 2),

		Title: lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		Body:  lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().Foreground(theme.Muted),
		Bold:  lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true),

		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		Success: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		Spinner: lipgloss.NewStyle().Foreground(theme.Accent),

		Edge:         lipgloss.NewStyle().Foreground(theme.Border),
		NodeLabel:    lipgloss.NewStyle().Foreground(theme.Muted),
		NodeSelected: lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),

		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorError).
			Padding(0, 1).
			Bold(true),
	}
}

// DefaultStyles returns styles with the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(ThemeFor("auto"))
}

// NodeColor picks a stable palette color for an ontology class type.
func NodeColor(nodeType string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(nodeType))
	return nodePalette[h.Sum32()%uint32(len(nodePalette))]
}
