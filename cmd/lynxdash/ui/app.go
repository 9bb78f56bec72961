package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"lynxdash/internal/store"
)

// Page identifies one of the dashboard views.
type Page int

const (
	PageGraph Page = iota
	PageDataSources
	PageTypeMappings
)

func (p Page) String() string {
	switch p {
	case PageGraph:
		return "Ontology"
	case PageDataSources:
		return "Data Sources"
	case PageTypeMappings:
		return "Type Mappings"
	}
	return "Unknown"
}

// fetchDoneMsg reports a completed fetch action for one page's resource.
type fetchDoneMsg struct {
	page Page
	err  error
}

// AppModel is the root bubbletea model: it owns the store, routes messages
// to the active page, and renders the surrounding chrome.
type AppModel struct {
	width  int
	height int

	store  *store.Store
	logger *zap.Logger
	styles Styles

	page         Page
	graph        GraphPageModel
	dataSources  DataSourcePageModel
	typeMappings TypeMappingPageModel

	spinner  spinner.Model
	loading  int
	showHelp bool

	// Whether the error banner row was accounted for in the last layout;
	// page sizes are recomputed when this flips.
	bannerShown bool
}

// NewAppModel creates the dashboard rooted at the ontology graph page.
func NewAppModel(st *store.Store, theme Theme, logger *zap.Logger) AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := NewStyles(theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return AppModel{
		store:        st,
		logger:       logger,
		styles:       styles,
		page:         PageGraph,
		graph:        NewGraphPageModel(styles, logger),
		dataSources:  NewDataSourcePageModel(styles),
		typeMappings: NewTypeMappingPageModel(styles),
		spinner:      sp,
		loading:      3, // Init fires one fetch per page
	}
}

// Init fires the initial fetch of all three resources.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCmd(PageGraph),
		m.fetchCmd(PageDataSources),
		m.fetchCmd(PageTypeMappings),
		m.spinner.Tick,
	)
}

// fetchCmd runs the store action for one page's resource off the Update
// loop. The store serializes its own state; the command only reports
// completion.
func (m AppModel) fetchCmd(page Page) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch page {
		case PageGraph:
			err = st.FetchGraph(ctx)
		case PageDataSources:
			err = st.FetchDataSources(ctx)
		case PageTypeMappings:
			err = st.FetchTypeMappings(ctx)
		}
		return fetchDoneMsg{page: page, err: err}
	}
}

// Update routes messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.page == PageGraph && !m.showHelp {
			adjusted := msg
			adjusted.Y -= HeaderHeight + TabBarHeight
			if m.bannerVisible() {
				adjusted.Y -= BannerHeight
			}
			var cmd tea.Cmd
			m.graph, cmd = m.graph.Update(adjusted)
			return m, cmd
		}
		return m, nil

	case simTickMsg:
		var cmd tea.Cmd
		m.graph, cmd = m.graph.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if m.loading == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		return m.handleFetchDone(msg)
	}
	return m, nil
}

func (m AppModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	return m, m.layoutPages()
}

// layoutPages distributes the viewport to the pages, reserving a row for
// the error banner when it is visible.
func (m *AppModel) layoutPages() tea.Cmd {
	m.bannerShown = m.bannerVisible()
	if m.width <= 0 || m.height <= 0 {
		return nil
	}

	w := ContentWidth(m.width)
	h := ContentHeight(m.height)
	if m.bannerShown {
		h -= BannerHeight
	}

	cmd := m.graph.SetSize(w, h)
	m.dataSources.SetSize(w, h)
	m.typeMappings.SetSize(w, h)
	return cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the filter input is capturing text, only ctrl+c stays global.
	if m.page == PageDataSources && m.dataSources.filterFocused {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.dataSources, cmd = m.dataSources.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "esc":
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		m.store.ClearErr()
		if m.bannerShown {
			return m, m.layoutPages()
		}
		return m, nil

	case "1":
		return m.switchPage(PageGraph)
	case "2":
		return m.switchPage(PageDataSources)
	case "3":
		return m.switchPage(PageTypeMappings)

	case "r":
		m.loading++
		return m, tea.Batch(m.fetchCmd(m.page), m.spinner.Tick)
	}

	if m.showHelp {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.page {
	case PageDataSources:
		m.dataSources, cmd = m.dataSources.Update(msg)
	case PageTypeMappings:
		m.typeMappings, cmd = m.typeMappings.Update(msg)
	}
	return m, cmd
}

// switchPage changes the active view. The graph page is torn down when
// navigated away from so its frame loop stops, and rebound from the store
// when navigated back to.
func (m AppModel) switchPage(page Page) (tea.Model, tea.Cmd) {
	if page == m.page {
		return m, nil
	}

	if m.page == PageGraph {
		m.graph.Unmount()
	}
	m.page = page

	if page == PageGraph {
		return m, m.graph.SetSnapshot(m.store.Snapshot())
	}
	return m, nil
}

func (m AppModel) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	if m.loading > 0 {
		m.loading--
	}

	var cmds []tea.Cmd

	if msg.err == nil {
		switch msg.page {
		case PageGraph:
			if m.page == PageGraph {
				cmds = append(cmds, m.graph.SetSnapshot(m.store.Snapshot()))
			}
		case PageDataSources:
			m.dataSources.UpdateContent(m.store.DataSources())
		case PageTypeMappings:
			m.typeMappings.UpdateContent(m.store.TypeMappings())
		}
	}

	// A failure raised the banner, a success may have cleared it; either
	// way the pages lose or regain its row.
	if m.bannerVisible() != m.bannerShown {
		cmds = append(cmds, m.layoutPages())
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) bannerVisible() bool {
	return m.store != nil && m.store.Err() != ""
}

// View renders chrome plus the active page.
func (m AppModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")

	if m.bannerVisible() {
		sb.WriteString(m.styles.Banner.Render("Error: " + m.store.Err()))
		sb.WriteString("  ")
		sb.WriteString(m.styles.Muted.Render("[esc] dismiss"))
		sb.WriteString("\n")
	}

	if m.showHelp {
		sb.WriteString(RenderHelp(m.styles.Theme, m.contentWidth()))
	} else {
		switch m.page {
		case PageGraph:
			sb.WriteString(m.graph.View())
		case PageDataSources:
			sb.WriteString(m.dataSources.View())
		case PageTypeMappings:
			sb.WriteString(m.typeMappings.View())
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m AppModel) contentWidth() int {
	if m.width <= 0 {
		return FallbackViewportWidth
	}
	return m.width
}

func (m AppModel) renderHeader() string {
	title := m.styles.Header.Render(" lynxdash ")
	if m.loading > 0 {
		return title + " " + m.spinner.View() + m.styles.Muted.Render(" fetching")
	}
	return title
}

func (m AppModel) renderTabs() string {
	pages := []Page{PageGraph, PageDataSources, PageTypeMappings}
	tabs := make([]string, 0, len(pages))
	for i, p := range pages {
		label := m.styles.Tab
		if p == m.page {
			label = m.styles.TabOn
		}
		tabs = append(tabs, label.Render(
			"["+string(rune('1'+i))+"] "+p.String()))
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m AppModel) renderFooter() string {
	return m.styles.Footer.Render("[r] refresh  [?] help  [q] quit")
}
