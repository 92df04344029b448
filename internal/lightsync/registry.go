package lightsync

import "github.com/gravitrone/lightman/internal/scene"

// Notifier is the change-notification side of the host.
type Notifier interface {
	Subscribe(fn scene.Handler) scene.HandlerID
	Unsubscribe(id scene.HandlerID) bool
}

// Registry tracks the subscriptions created by the latest rebuild so the next
// rebuild can remove them all before creating fresh ones.
type Registry struct {
	source Notifier
	ids    []scene.HandlerID
}

// NewRegistry returns a registry subscribing through source.
func NewRegistry(source Notifier) *Registry {
	return &Registry{source: source}
}

// Add subscribes fn and tracks the subscription.
func (r *Registry) Add(fn scene.Handler) scene.HandlerID {
	id := r.source.Subscribe(fn)
	r.ids = append(r.ids, id)
	return id
}

// Clear removes every tracked subscription and returns how many were removed.
func (r *Registry) Clear() int {
	removed := 0
	for _, id := range r.ids {
		if r.source.Unsubscribe(id) {
			removed++
		}
	}
	r.ids = nil
	return removed
}

// Len returns the number of tracked subscriptions.
func (r *Registry) Len() int { return len(r.ids) }
