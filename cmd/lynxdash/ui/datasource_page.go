package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lynxdash/internal/deeplynx"
)

// DataSourcePageModel lists the container's data sources in a scrollable
// table with a live text filter.
type DataSourcePageModel struct {
	width  int
	height int
	table  table.Model

	sources  []deeplynx.DataSource
	filtered []deeplynx.DataSource

	filterInput   textinput.Model
	filterFocused bool

	styles Styles
}

// NewDataSourcePageModel creates the data source table page.
func NewDataSourcePageModel(styles Styles) DataSourcePageModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 8},
			{Title: "Name", Width: 28},
			{Title: "Adapter", Width: 16},
			{Title: "Status", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	fi := textinput.New()
	fi.Placeholder = "Filter by name or adapter..."
	fi.CharLimit = 50
	fi.Width = 36

	return DataSourcePageModel{
		table:       t,
		filterInput: fi,
		filtered:    make([]deeplynx.DataSource, 0),
		styles:      styles,
	}
}

// Update handles messages.
func (m DataSourcePageModel) Update(msg tea.Msg) (DataSourcePageModel, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "/":
			m.filterFocused = !m.filterFocused
			if m.filterFocused {
				m.filterInput.Focus()
			} else {
				m.filterInput.Blur()
			}
			return m, nil
		case "esc", "enter":
			if m.filterFocused {
				m.filterFocused = false
				m.filterInput.Blur()
				return m, nil
			}
		}
	}

	if m.filterFocused {
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyFilter()
		return m, cmd
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *DataSourcePageModel) applyFilter() {
	filterText := strings.ToLower(m.filterInput.Value())

	m.filtered = make([]deeplynx.DataSource, 0, len(m.sources))
	for _, s := range m.sources {
		if filterText != "" &&
			!strings.Contains(strings.ToLower(s.Name), filterText) &&
			!strings.Contains(strings.ToLower(s.Type), filterText) {
			continue
		}
		m.filtered = append(m.filtered, s)
	}
	m.updateTableRows()
}

func (m *DataSourcePageModel) updateTableRows() {
	var rows []table.Row
	for _, s := range m.filtered {
		rows = append(rows, table.Row{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			s.Type,
			s.Status,
		})
	}
	m.table.SetRows(rows)
}

// View renders the page.
func (m DataSourcePageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Data Sources") + "\n\n")

	if len(m.sources) == 0 {
		sb.WriteString(m.styles.Muted.Render("No data sources registered."))
		return m.styles.Content.Render(sb.String())
	}

	sb.WriteString(m.renderFilterBar())
	sb.WriteString("\n\n")
	sb.WriteString(m.table.View())

	if len(m.filtered) != len(m.sources) {
		sb.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("\nShowing %d of %d sources", len(m.filtered), len(m.sources))))
	}

	return m.styles.Content.Render(sb.String())
}

func (m DataSourcePageModel) renderFilterBar() string {
	filterStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Border).
		Padding(0, 1)
	if m.filterFocused {
		filterStyle = filterStyle.BorderForeground(m.styles.Theme.Primary)
	}

	hint := m.styles.Muted.Render("[/] Filter")
	return filterStyle.Render(m.filterInput.View()) + "  " + hint
}

// SetSize updates the size.
func (m *DataSourcePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.table.SetWidth(w - 2*ContentPaddingH)
	if rows := h - 8; rows > 3 {
		m.table.SetHeight(rows)
	}
}

// UpdateContent replaces the table data wholesale.
func (m *DataSourcePageModel) UpdateContent(sources []deeplynx.DataSource) {
	m.sources = sources
	m.applyFilter()
}
