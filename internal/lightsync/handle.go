package lightsync

// Handle is a non-owning reference to a control in a Slots table. The zero
// Handle never resolves.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h was never assigned.
func (h Handle) IsZero() bool { return h.gen == 0 }

type slot struct {
	gen  uint32
	ctrl *Control
}

// Slots owns controls and hands out generation-tagged handles. Releasing a
// slot bumps its generation so every outstanding handle to it stops
// resolving, even after the slot is reused.
type Slots struct {
	slots []slot
	free  []uint32
	live  int
}

// Insert stores c and returns its handle.
func (s *Slots) Insert(c *Control) Handle {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}
	sl := &s.slots[idx]
	sl.gen++
	sl.ctrl = c
	s.live++
	return Handle{index: idx, gen: sl.gen}
}

// Resolve returns the control behind h, or false once it was released.
func (s *Slots) Resolve(h Handle) (*Control, bool) {
	if h.gen == 0 || int(h.index) >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[h.index]
	if sl.gen != h.gen || sl.ctrl == nil {
		return nil, false
	}
	return sl.ctrl, true
}

// Release destroys the control behind h.
func (s *Slots) Release(h Handle) bool {
	if _, ok := s.Resolve(h); !ok {
		return false
	}
	sl := &s.slots[h.index]
	sl.ctrl = nil
	sl.gen++
	s.free = append(s.free, h.index)
	s.live--
	return true
}

// Reset destroys every live control.
func (s *Slots) Reset() {
	for i := range s.slots {
		if s.slots[i].ctrl != nil {
			s.slots[i].ctrl = nil
			s.slots[i].gen++
			s.free = append(s.free, uint32(i))
		}
	}
	s.live = 0
}

// Len returns the number of live controls.
func (s *Slots) Len() int { return s.live }

// Binding ties a cell to its control through a weak handle.
type Binding struct {
	slots  *Slots
	handle Handle
}

// Control resolves the bound control; false means it was destroyed.
func (b Binding) Control() (*Control, bool) {
	if b.slots == nil {
		return nil, false
	}
	return b.slots.Resolve(b.handle)
}
