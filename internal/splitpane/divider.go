package splitpane

import "time"

// DividerState is the interaction state of one divider.
type DividerState int

const (
	Idle DividerState = iota
	HoverPending
	Hovered
	Dragging
)

// String returns the state name.
func (s DividerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case HoverPending:
		return "hover-pending"
	case Hovered:
		return "hovered"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Highlighted reports whether a host should draw the divider widened or
// accented.
func (s DividerState) Highlighted() bool {
	return s == Hovered || s == Dragging
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler creates the hover delay timers. Hosts with their own event loop
// supply one that delivers the callback on that loop.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc calls fn(d, f).
func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// realScheduler runs callbacks on the runtime timer goroutine.
type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// divider is the state machine of one divider. It never touches sizes.
//
// gen is bumped on every transition out of HoverPending. A timer callback
// carries the gen it was armed with and is dropped if it no longer matches,
// which covers a timer that fired concurrently with Stop.
type divider struct {
	state DividerState
	timer Timer
	gen   uint64
}

// enter handles pointer-enter. It returns the generation to arm the hover
// timer with, or false when no timer is needed.
func (d *divider) enter() (uint64, bool) {
	if d.state != Idle {
		return 0, false
	}
	d.state = HoverPending
	d.gen++
	return d.gen, true
}

// elapsed handles the hover timer firing for generation gen.
func (d *divider) elapsed(gen uint64) bool {
	if d.state != HoverPending || gen != d.gen {
		return false
	}
	d.timer = nil
	d.state = Hovered
	return true
}

// leave handles pointer-leave. Dragging ignores it.
func (d *divider) leave() bool {
	switch d.state {
	case HoverPending:
		d.cancelTimer()
		d.state = Idle
		return true
	case Hovered:
		d.state = Idle
		return true
	}
	return false
}

// press moves to Dragging from any state.
func (d *divider) press() {
	d.cancelTimer()
	d.state = Dragging
}

// release returns a dragging divider to Idle.
func (d *divider) release() bool {
	if d.state != Dragging {
		return false
	}
	d.state = Idle
	return true
}

func (d *divider) cancelTimer() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
