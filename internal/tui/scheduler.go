package tui

import (
	"time"

	"github.com/MikeBiancalana/splitpane/internal/splitpane"
	tea "github.com/charmbracelet/bubbletea"
)

// hoverTimerMsg is delivered when a hover delay armed through teaScheduler
// runs out.
type hoverTimerMsg struct {
	id uint64
}

// teaScheduler turns engine timers into tea.Tick commands so hover
// transitions run inside Update like every other state change. Timers armed
// during an engine call are collected and handed to the runtime by drain.
type teaScheduler struct {
	next    uint64
	timers  map[uint64]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	s  *teaScheduler
	id uint64
	fn func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[uint64]*teaTimer)}
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) splitpane.Timer {
	s.next++
	t := &teaTimer{s: s, id: s.next, fn: f}
	s.timers[t.id] = t

	id := t.id
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return hoverTimerMsg{id: id}
	}))
	return t
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

// fire runs the callback of timer id unless it was stopped.
func (s *teaScheduler) fire(id uint64) bool {
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	t.fn()
	return true
}

// drain returns the ticks armed since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// active is the number of armed timers.
func (s *teaScheduler) active() int {
	return len(s.timers)
}
