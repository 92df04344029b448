package scene

// IDKind tells what an update ID names.
type IDKind int

const (
	KindObject IDKind = iota
	KindLight
	KindScene
)

// Update identifies one thing a mutation touched.
type Update struct {
	ID   string
	Kind IDKind
}

// Batch is the set of updates delivered after one mutation completes.
type Batch struct {
	Updates []Update
}

// Touches reports whether any update in the batch carries id.
func (b Batch) Touches(id string) bool {
	if id == "" {
		return false
	}
	for _, u := range b.Updates {
		if u.ID == id {
			return true
		}
	}
	return false
}

// Handler is invoked once per batch after each scene mutation.
type Handler func(Batch)

// HandlerID identifies a registered handler.
type HandlerID uint64

type handlerEntry struct {
	id HandlerID
	fn Handler
}

// Subscribe registers fn for every future batch.
func (s *Scene) Subscribe(fn Handler) HandlerID {
	s.nextHandler++
	id := s.nextHandler
	s.handlers = append(s.handlers, handlerEntry{id: id, fn: fn})
	return id
}

// Unsubscribe removes a handler. It reports false for unknown IDs.
func (s *Scene) Unsubscribe(id HandlerID) bool {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// HandlerCount returns the number of registered handlers.
func (s *Scene) HandlerCount() int {
	return len(s.handlers)
}

// publish delivers one batch to every handler registered at call time, even if
// a handler unsubscribes others while the batch is in flight.
func (s *Scene) publish(updates ...Update) {
	batch := Batch{Updates: make([]Update, 0, len(updates))}
	for _, u := range updates {
		if u.ID != "" {
			batch.Updates = append(batch.Updates, u)
		}
	}
	if len(s.handlers) == 0 || len(batch.Updates) == 0 {
		return
	}
	snapshot := make([]handlerEntry, len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		h.fn(batch)
	}
}
