// Package ui layout constants for consistent spacing and dimensions.
package ui

// Chrome dimensions around the page content.
const (
	HeaderHeight = 1
	TabBarHeight = 1
	FooterHeight = 1
	BannerHeight = 1

	ContentPaddingH = 2

	// Fallback viewport used before the terminal has reported a size.
	FallbackViewportWidth  = 80
	FallbackViewportHeight = 24

	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 16
)

// ContentHeight returns the rows available to a page for a given terminal
// height, accounting for header, tab bar and footer.
func ContentHeight(terminalHeight int) int {
	h := terminalHeight - HeaderHeight - TabBarHeight - FooterHeight
	if h < 0 {
		return 0
	}
	return h
}

// ContentWidth returns the columns available to a page.
func ContentWidth(terminalWidth int) int {
	w := terminalWidth - ContentPaddingH
	if w < 0 {
		return 0
	}
	return w
}
