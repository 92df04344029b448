package lightsync

import "time"

// DefaultStatusDuration is how long a status message stays up.
const DefaultStatusDuration = 3500 * time.Millisecond

// Scheduler runs fn once after d. Implementations must call fn on the same
// goroutine that drives the controller.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Status is the transient message slot. Every Post schedules an unconditional
// clear; earlier clears are not cancelled, so an old timer can blank a newer
// message.
type Status struct {
	text     string
	duration time.Duration
	sched    Scheduler
	posted   []string
}

func newStatus(sched Scheduler, d time.Duration) *Status {
	if d <= 0 {
		d = DefaultStatusDuration
	}
	return &Status{duration: d, sched: sched}
}

// Post shows text and schedules its clear.
func (s *Status) Post(text string) {
	s.text = text
	s.posted = append(s.posted, text)
	if s.sched != nil {
		s.sched.AfterFunc(s.duration, s.clear)
	}
}

func (s *Status) clear() { s.text = "" }

// Text returns the message currently shown.
func (s *Status) Text() string { return s.text }

// Duration returns the display duration.
func (s *Status) Duration() time.Duration { return s.duration }

// Drain returns every message posted since the last Drain.
func (s *Status) Drain() []string {
	out := s.posted
	s.posted = nil
	return out
}
