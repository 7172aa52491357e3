// Package event provides typed observer lists. Each component owns one Signal
// per event kind instead of sharing a string-keyed emitter.
package event

// Handler receives the payload of an emitted event
type Handler[T any] func(T)

// Subscription identifies a registered handler
type Subscription struct {
	off func()
}

// Off removes the handler. Calling it more than once is a no-op.
func (s *Subscription) Off() {
	if s == nil || s.off == nil {
		return
	}
	s.off()
	s.off = nil
}

type entry[T any] struct {
	id uint64
	fn Handler[T]
}

// Signal is an ordered list of handlers for one event type.
// It is not safe for concurrent use; all calls happen on the UI thread.
type Signal[T any] struct {
	handlers []entry[T]
	nextID   uint64
}

// On registers a handler and returns its subscription
func (s *Signal[T]) On(fn Handler[T]) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, entry[T]{id: id, fn: fn})
	return &Subscription{off: func() { s.remove(id) }}
}

// Once registers a handler that is removed after its first invocation
func (s *Signal[T]) Once(fn Handler[T]) *Subscription {
	var sub *Subscription
	sub = s.On(func(v T) {
		sub.Off()
		fn(v)
	})
	return sub
}

func (s *Signal[T]) remove(id uint64) {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every handler in registration order. Handlers added or removed
// during emission take effect on the next Emit.
func (s *Signal[T]) Emit(v T) {
	if len(s.handlers) == 0 {
		return
	}
	snapshot := make([]entry[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len returns the number of registered handlers
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

// Clear removes all handlers
func (s *Signal[T]) Clear() {
	s.handlers = nil
}
