package ui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# lynxdash

Terminal dashboard for a Deep Lynx container.

## Pages

| Key | Page |
|-----|------|
| ` + "`1`" + ` | Ontology graph |
| ` + "`2`" + ` | Data sources |
| ` + "`3`" + ` | Type mappings |

## Graph view

- **Click** a node to select it and see its class details.
- **Drag** a node to pin it to the pointer; releasing lets the layout
  take it back.
- The layout reflows on every terminal resize.

## Global keys

| Key | Action |
|-----|--------|
| ` + "`r`" + ` | Refresh the current page from the server |
| ` + "`?`" + ` | Toggle this help |
| ` + "`q`" + ` / ` + "`ctrl+c`" + ` | Quit |
`

// RenderHelp renders the help overlay as themed markdown. It degrades to
// the raw markdown when the renderer cannot be constructed.
func RenderHelp(theme Theme, width int) string {
	wrap := width - 2*ContentPaddingH
	if wrap < 40 {
		wrap = 40
	}

	var renderer *glamour.TermRenderer
	var err error
	if theme.IsDark {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	} else {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(wrap),
		)
	}
	if err != nil || renderer == nil {
		return helpMarkdown
	}

	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
