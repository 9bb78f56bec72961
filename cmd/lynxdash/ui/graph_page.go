package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"lynxdash/internal/deeplynx"
	"lynxdash/internal/force"
)

// Simulation tuning. These are constants to taste, chosen so an ontology of
// a few dozen classes spreads readably across a terminal; cell space is a
// much smaller coordinate system than pixels, hence the modest magnitudes.
const (
	linkDistance    = 14.0
	chargeStrength  = -60.0
	collideRadius   = 2.0
	dragAlphaTarget = 0.3
	hitRadius       = 3.0

	frameInterval = time.Second / 20

	nodeGlyph     = '●'
	selectedGlyph = '◉'
	edgeGlyph     = '·'

	maxLabelLen = 14
)

// simTickMsg drives one simulation step. The generation stamp lets a
// rebuilt view ignore frames scheduled by a disposed predecessor, so two
// tick loops never run against the same surface.
type simTickMsg struct {
	generation int
}

// GraphPageModel renders an interactive force-directed layout of the
// ontology snapshot and owns its lifecycle: at most one live simulation,
// fully disposed before any rebuild.
type GraphPageModel struct {
	width  int
	height int
	styles Styles
	logger *zap.Logger

	snapshot deeplynx.GraphSnapshot

	// Working set rebuilt on every snapshot replacement. Positions are
	// simulation-owned; the store's snapshot is never mutated.
	sim    *force.Simulation
	center *force.CenterForce
	nodes  []*force.Node
	links  []*force.Link
	meta   map[string]deeplynx.GraphNode

	canvasW int
	canvasH int

	selected string // selected node id, empty for none
	dragging string // node id currently pinned to the pointer

	generation int
	ticking    bool
}

// NewGraphPageModel creates an uninitialized graph page. The simulation
// starts only once a non-empty snapshot arrives.
func NewGraphPageModel(styles Styles, logger *zap.Logger) GraphPageModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return GraphPageModel{
		styles: styles,
		logger: logger,
		meta:   make(map[string]deeplynx.GraphNode),
	}
}

// SetSnapshot replaces the displayed graph. The previous simulation and its
// bindings are torn down before anything new is constructed; node identity
// is not preserved across replacement, so pins and energy state reset.
func (m *GraphPageModel) SetSnapshot(snapshot deeplynx.GraphSnapshot) tea.Cmd {
	m.dispose()
	m.snapshot = snapshot
	return m.initialize()
}

// SetSize records the viewport and reshapes a live layout: the surface is
// resized, the centering force moves to the new midpoint, and one burst of
// energy redistributes the nodes rather than leaving them frozen
// off-center.
func (m *GraphPageModel) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	if m.sim == nil {
		// A snapshot may have arrived before the terminal reported a
		// size; initialize now that the viewport is known.
		return m.initialize()
	}

	m.canvasW, m.canvasH = m.viewport()
	m.center.SetPosition(float64(m.canvasW)/2, float64(m.canvasH)/2)
	m.sim.SetAlpha(1)
	return m.startTick()
}

// Unmount tears the view down, stopping the frame loop.
func (m *GraphPageModel) Unmount() {
	m.dispose()
}

// Selected returns the currently selected node, if any.
func (m *GraphPageModel) Selected() (deeplynx.GraphNode, bool) {
	n, ok := m.meta[m.selected]
	return n, ok
}

// dispose removes every binding of the previous simulation. Bumping the
// generation invalidates any in-flight frame message so the old loop halts
// instead of stepping a dead simulation.
func (m *GraphPageModel) dispose() {
	m.generation++
	m.ticking = false
	m.sim = nil
	m.center = nil
	m.nodes = nil
	m.links = nil
	m.meta = make(map[string]deeplynx.GraphNode)
	m.selected = ""
	m.dragging = ""
}

// viewport returns the drawable dimensions, falling back to fixed defaults
// when the terminal has not reported a size yet.
func (m *GraphPageModel) viewport() (w, h int) {
	w = m.width
	h = m.height - 1 // one row reserved for the selection line
	if w <= 0 || h <= 0 {
		return FallbackViewportWidth, FallbackViewportHeight
	}
	return w, h
}

// initialize builds the working node/edge set and the simulation. With an
// empty node sequence it is a no-op and the view stays uninitialized.
func (m *GraphPageModel) initialize() tea.Cmd {
	if m.sim != nil || len(m.snapshot.Nodes) == 0 {
		return nil
	}

	m.canvasW, m.canvasH = m.viewport()

	m.nodes = make([]*force.Node, 0, len(m.snapshot.Nodes))
	m.meta = make(map[string]deeplynx.GraphNode, len(m.snapshot.Nodes))
	for _, n := range m.snapshot.Nodes {
		m.nodes = append(m.nodes, &force.Node{ID: n.ID})
		m.meta[n.ID] = n
	}

	m.links = make([]*force.Link, 0, len(m.snapshot.Relationships))
	for _, e := range m.snapshot.Relationships {
		m.links = append(m.links, &force.Link{SourceID: e.Source, TargetID: e.Target})
	}

	m.sim = force.NewSimulation(m.nodes)
	m.center = force.NewCenterForce(float64(m.canvasW)/2, float64(m.canvasH)/2)
	m.sim.AddForce(force.NewLinkForce(m.links, linkDistance))
	m.sim.AddForce(force.NewManyBodyForce(chargeStrength))
	m.sim.AddForce(m.center)
	m.sim.AddForce(force.NewCollideForce(collideRadius))

	m.logger.Debug("graph view initialized",
		zap.Int("nodes", len(m.nodes)),
		zap.Int("edges", len(m.links)),
		zap.Int("width", m.canvasW),
		zap.Int("height", m.canvasH))

	return m.startTick()
}

// startTick schedules the frame loop if it is not already running.
func (m *GraphPageModel) startTick() tea.Cmd {
	if m.sim == nil || m.ticking {
		return nil
	}
	m.ticking = true
	return frameCmd(m.generation)
}

func frameCmd(generation int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return simTickMsg{generation: generation}
	})
}

// Update handles frame and pointer messages.
func (m GraphPageModel) Update(msg tea.Msg) (GraphPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case simTickMsg:
		if msg.generation != m.generation || m.sim == nil {
			return m, nil // frame from a disposed simulation
		}
		m.sim.Step()
		if m.sim.Running() {
			return m, frameCmd(m.generation)
		}
		m.ticking = false
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleMouse implements the selection and drag contracts. A press either
// hits a node (select + begin drag) or empty background (clear selection);
// the two are exclusive by construction, so selecting never also clears.
func (m GraphPageModel) handleMouse(msg tea.MouseMsg) (GraphPageModel, tea.Cmd) {
	if m.sim == nil {
		return m, nil
	}
	x, y := float64(msg.X), float64(msg.Y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if hit := m.sim.Find(x, y, hitRadius); hit != nil {
			m.selected = hit.ID
			m.dragging = hit.ID
			if m.sim.AlphaTarget() == 0 {
				m.sim.SetAlphaTarget(dragAlphaTarget)
			}
			hit.Pin(hit.X, hit.Y)
			return m, m.startTick()
		}
		m.selected = ""

	case msg.Action == tea.MouseActionMotion && m.dragging != "":
		if n := m.nodeByID(m.dragging); n != nil {
			n.Pin(x, y)
		}
		return m, m.startTick()

	case msg.Action == tea.MouseActionRelease && m.dragging != "":
		if n := m.nodeByID(m.dragging); n != nil {
			n.Unpin()
		}
		m.dragging = ""
		m.sim.SetAlphaTarget(0)
	}
	return m, nil
}

func (m *GraphPageModel) nodeByID(id string) *force.Node {
	for _, n := range m.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// View paints the current simulation state: every relationship as a line
// between its endpoints' current positions, every node as a glyph plus
// label at its current transform.
func (m GraphPageModel) View() string {
	if m.sim == nil {
		return m.styles.Content.Render(
			m.styles.Muted.Render("No ontology classes to display."))
	}

	canvas := NewCanvas(m.canvasW, m.canvasH)

	for _, l := range m.links {
		src, tgt := l.Source(), l.Target()
		if src == nil || tgt == nil {
			continue
		}
		canvas.Line(round(src.X), round(src.Y), round(tgt.X), round(tgt.Y), edgeGlyph, m.styles.Edge)
	}

	for _, n := range m.nodes {
		info := m.meta[n.ID]
		x, y := round(n.X), round(n.Y)

		glyph := nodeGlyph
		style := m.styles.Body.Foreground(NodeColor(info.Type))
		if n.ID == m.selected {
			glyph = selectedGlyph
			style = m.styles.NodeSelected
		}
		canvas.Set(x, y, glyph, style)
		canvas.Text(x+2, y, truncate(info.Name, maxLabelLen), m.styles.NodeLabel)
	}

	return canvas.Render() + "\n" + m.statusLine()
}

func (m GraphPageModel) statusLine() string {
	if sel, ok := m.Selected(); ok {
		return m.styles.Bold.Render(sel.Name) +
			m.styles.Muted.Render(fmt.Sprintf("  type=%s id=%s", sel.Type, sel.ID))
	}
	return m.styles.Muted.Render(fmt.Sprintf(
		"%d classes, %d relationships | click to select, drag to pin",
		len(m.nodes), len(m.links)))
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
