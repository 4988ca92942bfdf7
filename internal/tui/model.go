package tui

import (
	"log/slog"
	"time"

	"github.com/MikeBiancalana/splitpane/internal/config"
	"github.com/MikeBiancalana/splitpane/internal/logger"
	"github.com/MikeBiancalana/splitpane/internal/perf"
	"github.com/MikeBiancalana/splitpane/internal/splitpane"
	"github.com/MikeBiancalana/splitpane/internal/tui/components"
	"github.com/MikeBiancalana/splitpane/internal/watch"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// Minimum terminal dimensions
const (
	MinTerminalWidth  = 20
	MinTerminalHeight = 5
)

// Border dimensions for lipgloss boxes
const (
	BorderWidth  = 2 // Left + right border (1 char each)
	BorderHeight = 2 // Top + bottom border (1 char each)
)

// slowEventThreshold marks engine calls that take long enough to drop frames.
const slowEventThreshold = 4 * time.Millisecond

// Model is the terminal host. It owns one pane tree built from a layout and
// feeds mouse, key and resize events to the engines in it.
//
// Everything runs on the bubbletea event loop: hover timers come back as
// hoverTimerMsg and layout reloads as layoutChangedMsg, so no engine is
// touched from another goroutine.
type Model struct {
	layout  config.Layout
	watcher *watch.Watcher
	logger  *slog.Logger

	tree   *paneNode
	router *pointerRouter
	sched  *teaScheduler

	width  int
	height int

	keys      keyMap
	help      help.Model
	statusBar *components.StatusBar

	helpMode         bool
	selected         int // index into tree.dividerRefs(), -1 for none
	lastError        error
	terminalTooSmall bool
	closed           bool

	dragRec       *perf.Recorder
	rescaleRec    *perf.Recorder
	pointerEvents *perf.OpCounter
}

// NewModel creates a model for layout. The pane tree is built on the first
// WindowSizeMsg, once the terminal size is known.
func NewModel(layout config.Layout) *Model {
	log := logger.GetLogger()

	return &Model{
		layout:        layout,
		logger:        log,
		router:        &pointerRouter{},
		sched:         newTeaScheduler(),
		keys:          defaultKeyMap(),
		help:          help.New(),
		statusBar:     components.NewStatusBar(),
		selected:      -1,
		dragRec:       perf.NewRecorder("drag_move", log, slowEventThreshold),
		rescaleRec:    perf.NewRecorder("rescale", log, slowEventThreshold),
		pointerEvents: perf.NewOpCounter("pointer_events"),
	}
}

// SetWatcher makes the model reload its layout when w reports a change. The
// model starts and stops the watcher.
func (m *Model) SetWatcher(w *watch.Watcher) {
	m.watcher = w
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if err := m.watcher.Start(); err != nil {
		logger.Warn("tui: layout watcher not started", "error", err)
		m.watcher.Stop()
		m.watcher = nil
		return nil
	}
	return m.waitForLayoutChange()
}

// Update handles messages and updates the model
// This function is a simple dispatcher that routes messages to
// dedicated handler methods organized in handlers.go
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case hoverTimerMsg:
		return m.handleHoverTimer(msg)

	case layoutChangedMsg:
		return m.handleLayoutChanged(msg)

	default:
		return m, nil
	}
}

// Close releases every engine, stops the watcher and logs the event
// statistics. It is safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true

	m.tree.close()
	m.router.reset()
	if m.watcher != nil {
		m.watcher.Stop()
	}

	m.dragRec.LogStats(slog.LevelDebug)
	m.rescaleRec.LogStats(slog.LevelDebug)
	logger.Debug("tui: pointer events", "count", m.pointerEvents.Value())
}

// engineOptions are shared by every engine in the tree.
func (m *Model) engineOptions() []splitpane.Option {
	return []splitpane.Option{
		splitpane.WithLogger(m.logger),
		splitpane.WithScheduler(m.sched),
	}
}

// selectedRef returns the divider chosen with tab, if any.
func (m *Model) selectedRef() dividerRef {
	refs := m.tree.dividerRefs()
	if m.selected < 0 || m.selected >= len(refs) {
		return dividerRef{}
	}
	return refs[m.selected]
}

// focusRef is the divider the status bar describes: the one being dragged,
// then the hovered one, then the keyboard selection.
func (m *Model) focusRef() dividerRef {
	if s := m.router.captured; s != nil {
		if session, ok := s.engine.Dragging(); ok {
			return dividerRef{split: s, index: session.DividerIndex}
		}
	}
	if m.router.hovered.valid() {
		return m.router.hovered
	}
	return m.selectedRef()
}

// Message type definitions
type layoutChangedMsg struct {
	event watch.ReloadEvent
}
