package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"lynxdash/internal/deeplynx"
)

// TypeMappingPageModel lists the container's type mappings.
type TypeMappingPageModel struct {
	width  int
	height int
	table  table.Model

	mappings []deeplynx.TypeMapping
	styles   Styles
}

// NewTypeMappingPageModel creates the type mapping table page.
func NewTypeMappingPageModel(styles Styles) TypeMappingPageModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 8},
			{Title: "Source Type", Width: 22},
			{Title: "Target Class", Width: 22},
			{Title: "Rules", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return TypeMappingPageModel{
		table:  t,
		styles: styles,
	}
}

// Update handles messages.
func (m TypeMappingPageModel) Update(msg tea.Msg) (TypeMappingPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the page.
func (m TypeMappingPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Type Mappings") + "\n\n")

	if len(m.mappings) == 0 {
		sb.WriteString(m.styles.Muted.Render("No type mappings defined."))
		return m.styles.Content.Render(sb.String())
	}

	sb.WriteString(m.table.View())
	return m.styles.Content.Render(sb.String())
}

// SetSize updates the size.
func (m *TypeMappingPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetWidth(w - 2*ContentPaddingH)
	if rows := h - 6; rows > 3 {
		m.table.SetHeight(rows)
	}
}

// UpdateContent replaces the table data wholesale.
func (m *TypeMappingPageModel) UpdateContent(mappings []deeplynx.TypeMapping) {
	m.mappings = mappings

	var rows []table.Row
	for _, tm := range mappings {
		rows = append(rows, table.Row{
			strconv.FormatInt(tm.ID, 10),
			tm.SourceType,
			tm.TargetType,
			tm.Rules,
		})
	}
	m.table.SetRows(rows)
}
