package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scheduledMsg runs fn inside Update once its tick fires.
type scheduledMsg struct {
	fn func()
}

// Scheduler turns delayed callbacks into tea.Tick commands so they run on the
// update loop, the same goroutine that drives the controller.
type Scheduler struct {
	pending []tea.Cmd
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc queues fn to run after d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return scheduledMsg{fn: fn}
	}))
}

// Flush hands the queued ticks to the runtime.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
