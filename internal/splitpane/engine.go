package splitpane

import (
	"fmt"
	"log/slog"
	"sync"
)

// Capturer grants the pointer capture a drag needs: the host routes every
// pointer move and release to the engine while a capture is held, wherever
// the pointer is. Capture is called when a drag starts and the returned
// release func is called exactly once when it ends, including on Close.
//
// Both are called with the engine locked and must not call back into it.
type Capturer interface {
	Capture() (release func())
}

// CapturerFunc adapts a function to Capturer.
type CapturerFunc func() func()

// Capture calls fn.
func (fn CapturerFunc) Capture() func() {
	return fn()
}

type noCapture struct{}

func (noCapture) Capture() func() { return func() {} }

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. A nil logger falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithScheduler sets the scheduler used for hover delay timers.
// AfterFunc must not run f synchronously.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithCapturer sets the pointer capture provider used during drags.
func WithCapturer(c Capturer) Option {
	return func(e *Engine) {
		if c != nil {
			e.capturer = c
		}
	}
}

// WithOnChange registers fn to run after a hover timer changes a divider
// state. Every other state change is the direct result of a method call.
func WithOnChange(fn func()) Option {
	return func(e *Engine) {
		e.onChange = fn
	}
}

// Engine is one resizable row or column of panels. All methods are safe for
// concurrent use, but the engine expects events one at a time from a single
// host loop; a hover timer is the only thing that calls in from elsewhere.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	bounds   []bounds
	sizes    []float64
	extent   float64
	dividers []divider

	session *DragSession
	release func()
	closed  bool

	logger    *slog.Logger
	scheduler Scheduler
	capturer  Capturer
	onChange  func()
}

// New validates cfg and allocates sizes for a container of the given extent.
func New(cfg Config, extent float64, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid split config: %w", err)
	}

	e := &Engine{
		logger:    slog.Default(),
		scheduler: realScheduler{},
		capturer:  noCapture{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.configure(cfg, extent)
	return e, nil
}

func (e *Engine) configure(cfg Config, extent float64) {
	cfg.Panels = append([]PanelSpec(nil), cfg.Panels...)
	e.cfg = cfg
	e.bounds = resolveBounds(cfg.Panels, cfg.DefaultMinSize, e.logger)
	e.extent = extent
	e.sizes = allocate(cfg.Panels, e.bounds, extent, cfg.DividerThickness)

	n := len(cfg.Panels) - 1
	if n < 0 {
		n = 0
	}
	e.dividers = make([]divider, n)

	e.logger.Debug("splitpane: allocated",
		"axis", cfg.Axis.String(), "panels", len(cfg.Panels), "extent", extent, "sizes", e.sizes)
}

// Sizes returns a copy of the current panel sizes.
func (e *Engine) Sizes() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]float64(nil), e.sizes...)
}

// Len returns the number of panels.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sizes)
}

// Axis returns the layout axis.
func (e *Engine) Axis() Axis {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.Axis
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.cfg
	cfg.Panels = append([]PanelSpec(nil), e.cfg.Panels...)
	return cfg
}

// Extent returns the last container extent seen.
func (e *Engine) Extent() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.extent
}

// DividerState returns the interaction state of divider i. Unknown dividers
// are Idle.
func (e *Engine) DividerState(i int) DividerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.validDivider(i) {
		return Idle
	}
	return e.dividers[i].state
}

// DividerCount returns the number of dividers, one fewer than the panels.
func (e *Engine) DividerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.dividers)
}

// Dragging returns a copy of the active drag session, if any.
func (e *Engine) Dragging() (DragSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return DragSession{}, false
	}
	s := *e.session
	s.StartSizes = append([]float64(nil), e.session.StartSizes...)
	return s, true
}

func (e *Engine) validDivider(i int) bool {
	return i >= 0 && i < len(e.dividers)
}

// PointerDown starts a drag on divider i at pos. It is ignored while another
// drag is active, after Close, and for unknown dividers.
func (e *Engine) PointerDown(i int, pos Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.session != nil || !e.validDivider(i) {
		return
	}

	e.dividers[i].press()
	e.session = newDragSession(i, e.cfg.Axis.Project(pos), e.sizes)
	e.release = e.capturer.Capture()

	e.logger.Debug("splitpane: drag start",
		"session", e.session.ID, "divider", i, "pos", e.session.StartPointerPos, "sizes", e.sizes)
}

// PointerMove feeds a pointer position to the active drag. Without one it
// does nothing.
func (e *Engine) PointerMove(pos Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return
	}
	delta := e.cfg.Axis.Project(pos) - e.session.StartPointerPos
	e.sizes = redistribute(e.session.StartSizes, e.bounds, e.session.DividerIndex, delta)
}

// PointerUp ends the active drag, keeping the sizes it produced.
func (e *Engine) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return
	}
	e.logger.Debug("splitpane: drag end", "session", e.session.ID, "sizes", e.sizes)
	e.endSession()
}

// CancelDrag ends the active drag and restores the sizes it started from.
// It reports whether a drag was active.
func (e *Engine) CancelDrag() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return false
	}
	e.sizes = append([]float64(nil), e.session.StartSizes...)
	e.logger.Debug("splitpane: drag cancelled", "session", e.session.ID)
	e.endSession()
	return true
}

// endSession is the single exit of a drag. Callers hold mu.
func (e *Engine) endSession() {
	if e.session == nil {
		return
	}
	if e.validDivider(e.session.DividerIndex) {
		e.dividers[e.session.DividerIndex].release()
	}
	e.session = nil
	release := e.release
	e.release = nil
	if release != nil {
		release()
	}
}

// ContainerExtentChanged rescales every panel to a new container extent. It
// reports false when the current sizes sum to zero and nothing was done. An
// active drag keeps going from proportionally rescaled start sizes.
func (e *Engine) ContainerExtentChanged(extent float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.extent = extent

	sizes, ok := rescale(e.sizes, e.bounds, extent, e.cfg.DividerThickness)
	if !ok {
		e.logger.Debug("splitpane: rescale skipped, zero total", "extent", extent)
		return false
	}
	e.sizes = sizes

	if e.session != nil {
		if start, ok := rescale(e.session.StartSizes, e.bounds, extent, e.cfg.DividerThickness); ok {
			e.session.StartSizes = start
		}
	}
	return true
}

// DividerPointerEnter marks the pointer as over divider i and arms the hover
// delay.
func (e *Engine) DividerPointerEnter(i int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.validDivider(i) {
		return
	}
	d := &e.dividers[i]
	gen, ok := d.enter()
	if !ok {
		return
	}
	d.timer = e.scheduler.AfterFunc(e.cfg.hoverDelay(), func() {
		e.hoverElapsed(i, gen)
	})
}

// DividerPointerLeave marks the pointer as off divider i.
func (e *Engine) DividerPointerLeave(i int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.validDivider(i) {
		return
	}
	e.dividers[i].leave()
}

func (e *Engine) hoverElapsed(i int, gen uint64) {
	e.mu.Lock()
	changed := !e.closed && e.validDivider(i) && e.dividers[i].elapsed(gen)
	onChange := e.onChange
	e.mu.Unlock()

	if changed && onChange != nil {
		onChange()
	}
}

// Nudge moves divider i by delta using the drag algorithm on the current
// sizes, for keyboard resizing. It does nothing during a drag and reports
// whether any size changed.
func (e *Engine) Nudge(i int, delta float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.session != nil || !e.validDivider(i) {
		return false
	}
	next := redistribute(e.sizes, e.bounds, i, delta)
	changed := next[i] != e.sizes[i] || next[i+1] != e.sizes[i+1]
	e.sizes = next
	return changed
}

// Reallocate discards the current sizes and allocates again for extent. Any
// active drag ends.
func (e *Engine) Reallocate(extent float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.endSession()
	e.extent = extent
	e.sizes = allocate(e.cfg.Panels, e.bounds, extent, e.cfg.DividerThickness)
}

// Reconfigure replaces the panel configuration and allocates for extent.
// Any active drag ends and pending hover timers are stopped.
func (e *Engine) Reconfigure(cfg Config, extent float64) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid split config: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return fmt.Errorf("engine is closed")
	}
	e.endSession()
	e.stopTimers()
	e.configure(cfg, extent)
	return nil
}

// Close ends any drag, releasing its capture, and stops all hover timers.
// Later events are ignored. Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.endSession()
	e.stopTimers()
	e.closed = true
}

func (e *Engine) stopTimers() {
	for i := range e.dividers {
		e.dividers[i].cancelTimer()
		e.dividers[i].state = Idle
	}
}

// Offsets returns the start position of every panel along the axis.
func (e *Engine) Offsets() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	offsets := make([]float64, len(e.sizes))
	var pos float64
	for k, s := range e.sizes {
		offsets[k] = pos
		pos += s + e.cfg.DividerThickness
	}
	return offsets
}

// DividerSpan returns the [start, end) span of divider i along the axis.
func (e *Engine) DividerSpan(i int) (start, end float64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.validDivider(i) {
		return 0, 0, false
	}
	return e.dividerSpan(i)
}

func (e *Engine) dividerSpan(i int) (float64, float64, bool) {
	var start float64
	for k := 0; k <= i; k++ {
		start += e.sizes[k]
	}
	start += float64(i) * e.cfg.DividerThickness
	return start, start + e.cfg.DividerThickness, true
}

// DividerAt returns the divider whose span, widened by slop on both sides,
// contains pos.
func (e *Engine) DividerAt(pos, slop float64) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.dividers {
		start, end, _ := e.dividerSpan(i)
		if pos >= start-slop && pos < end+slop {
			return i, true
		}
	}
	return -1, false
}
