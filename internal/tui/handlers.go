package tui

import (
	"github.com/MikeBiancalana/splitpane/internal/logger"
	"github.com/MikeBiancalana/splitpane/internal/splitpane"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Message Handlers
//
// These methods handle specific message types, keeping the main Update()
// function clean and focused. Each handler follows the pattern:
//
//   func (m *Model) handle<MessageType>(msg <MessageType>) (tea.Model, tea.Cmd)
//
// Engine calls may arm hover timers, so every handler that touches an engine
// returns m.sched.drain() to hand those ticks to the runtime.

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Check if terminal meets minimum dimensions
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	m.statusBar.SetWidth(msg.Width)
	m.help.Width = msg.Width

	return m, m.resize()
}

// resize fits the pane tree to the current content area, building it on the
// first call. Nothing is laid out while the terminal is too small, so the
// first allocation always sees a usable extent.
func (m *Model) resize() tea.Cmd {
	if m.terminalTooSmall {
		return nil
	}
	content := m.contentRect()
	if m.tree == nil {
		return m.rebuild(content)
	}
	m.rescaleRec.Time(func() {
		m.tree.setRect(content)
	})
	return m.sched.drain()
}

func (m *Model) contentRect() rect {
	helpHeight := 0
	if m.helpMode {
		helpHeight = lipgloss.Height(m.fullHelpView())
	}
	dims := CalculatePaneDimensions(m.width, m.height, helpHeight)
	return rect{W: dims.ContentWidth, H: dims.ContentHeight}
}

// rebuild replaces the pane tree with a fresh one for m.layout.
func (m *Model) rebuild(content rect) tea.Cmd {
	b := treeBuilder{router: m.router, opts: m.engineOptions()}
	tree, err := b.build(m.layout, "", content)
	if err != nil {
		logger.Error("tui: failed to build layout", "error", err)
		m.setError(err)
		return nil
	}

	m.tree.close()
	m.router.reset()
	m.tree = tree
	m.selected = -1
	m.setError(nil)

	logger.Debug("tui: layout built",
		"width", content.W, "height", content.H, "dividers", len(tree.dividerRefs()))
	return m.sched.drain()
}

// handleMouse routes pointer events. A held capture gets every motion and
// release; otherwise the pointer position decides hover and press targets.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tree == nil || m.terminalTooSmall {
		return m, nil
	}
	m.pointerEvents.Inc()
	pos := splitpane.Point{X: float64(msg.X), Y: float64(msg.Y)}

	if s := m.router.captured; s != nil {
		switch msg.Action {
		case tea.MouseActionMotion:
			m.dragRec.Time(func() {
				s.engine.PointerMove(pos)
			})
			m.tree.relayout()
		case tea.MouseActionRelease:
			s.engine.PointerUp()
			m.tree.relayout()
			// The engine left the divider idle; start hover tracking from
			// here without re-entering it.
			ref, _ := m.tree.dividerAt(msg.X, msg.Y)
			m.router.hovered = ref
		}
		return m, m.sched.drain()
	}

	ref, _ := m.tree.dividerAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.router.hover(ref)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		m.router.hover(ref)
		if ref.valid() {
			ref.split.engine.PointerDown(ref.index, pos)
			m.selectRef(ref)
		}
	}
	return m, m.sched.drain()
}

// handleHoverTimer runs the engine callback for an expired hover delay.
func (m *Model) handleHoverTimer(msg hoverTimerMsg) (tea.Model, tea.Cmd) {
	m.sched.fire(msg.id)
	return m, m.sched.drain()
}

// handleLayoutChanged applies a reloaded layout file. A layout with the same
// nesting reconfigures the existing engines; anything else rebuilds the tree.
// A broken file keeps the current layout and shows the error.
func (m *Model) handleLayoutChanged(msg layoutChangedMsg) (tea.Model, tea.Cmd) {
	next := m.waitForLayoutChange()
	if msg.event.Err != nil {
		logger.Warn("tui: layout reload failed", "path", msg.event.Path, "error", msg.event.Err)
		m.setError(msg.event.Err)
		return m, next
	}

	logger.Info("tui: layout reloaded", "path", msg.event.Path)
	m.layout = msg.event.Layout
	m.setError(nil)
	if m.tree == nil {
		return m, next
	}

	if m.tree.sameShape(m.layout) {
		err := m.tree.reconfigure(m.layout)
		if err == nil {
			m.router.reset()
			return m, tea.Batch(m.sched.drain(), next)
		}
		logger.Warn("tui: reconfigure failed, rebuilding", "error", err)
	}
	return m, tea.Batch(m.rebuild(m.tree.rect), next)
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpMode = !m.helpMode
		return m, m.resize()
	}

	if m.tree == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if s := m.router.captured; s != nil && s.engine.CancelDrag() {
			m.tree.relayout()
		}

	case key.Matches(msg, m.keys.Reset):
		m.tree.reallocate()

	case key.Matches(msg, m.keys.NextDivider):
		m.cycleSelection(1)

	case key.Matches(msg, m.keys.PrevDivider):
		m.cycleSelection(-1)

	case key.Matches(msg, m.keys.Grow):
		m.nudgeSelected(1)

	case key.Matches(msg, m.keys.Shrink):
		m.nudgeSelected(-1)
	}
	return m, m.sched.drain()
}

func (m *Model) cycleSelection(step int) {
	n := len(m.tree.dividerRefs())
	if n == 0 {
		m.selected = -1
		return
	}
	if m.selected < 0 {
		if step > 0 {
			m.selected = 0
		} else {
			m.selected = n - 1
		}
		return
	}
	m.selected = ((m.selected+step)%n + n) % n
}

func (m *Model) selectRef(ref dividerRef) {
	for i, r := range m.tree.dividerRefs() {
		if r == ref {
			m.selected = i
			return
		}
	}
}

// nudgeSelected moves the selected divider by one cell.
func (m *Model) nudgeSelected(delta float64) {
	ref := m.selectedRef()
	if !ref.valid() {
		return
	}
	if ref.split.engine.Nudge(ref.index, delta) {
		m.tree.relayout()
	}
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.statusBar.SetError(err)
}
