package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lynxdash/internal/deeplynx"
)

func TestDataSourcePageRendersRows(t *testing.T) {
	m := NewDataSourcePageModel(DefaultStyles())
	m.SetSize(100, 30)
	m.UpdateContent([]deeplynx.DataSource{
		{ID: 7, Name: "plant-historian", Type: "http", Status: "active"},
	})

	view := m.View()
	for _, want := range []string{"7", "plant-historian", "http", "active"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestDataSourcePageEmptyState(t *testing.T) {
	m := NewDataSourcePageModel(DefaultStyles())
	m.UpdateContent(nil)

	if view := m.View(); !strings.Contains(view, "No data sources registered") {
		t.Fatalf("expected empty-state message, got %q", view)
	}
}

func TestDataSourcePageFilter(t *testing.T) {
	m := NewDataSourcePageModel(DefaultStyles())
	m.SetSize(100, 30)
	m.UpdateContent([]deeplynx.DataSource{
		{ID: 1, Name: "plant-historian", Type: "http", Status: "active"},
		{ID: 2, Name: "csv-import", Type: "standard", Status: "inactive"},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filterFocused {
		t.Fatal("slash should focus the filter input")
	}

	m.filterInput.SetValue("csv")
	m.applyFilter()

	if len(m.filtered) != 1 || m.filtered[0].ID != 2 {
		t.Fatalf("filter matched %d sources, want only csv-import", len(m.filtered))
	}
	if view := m.View(); !strings.Contains(view, "Showing 1 of 2") {
		t.Fatal("view missing filter count")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterFocused {
		t.Fatal("esc should blur the filter input")
	}
}

func TestTypeMappingPageRendersRows(t *testing.T) {
	m := NewTypeMappingPageModel(DefaultStyles())
	m.SetSize(100, 30)
	m.UpdateContent([]deeplynx.TypeMapping{
		{ID: 3, SourceType: "pump_reading", TargetType: "Pump", Rules: "4 rules"},
	})

	view := m.View()
	for _, want := range []string{"3", "pump_reading", "Pump", "4 rules"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestTypeMappingPageEmptyState(t *testing.T) {
	m := NewTypeMappingPageModel(DefaultStyles())
	m.UpdateContent(nil)

	if view := m.View(); !strings.Contains(view, "No type mappings defined") {
		t.Fatalf("expected empty-state message, got %q", view)
	}
}
