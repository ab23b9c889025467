// Package event provides typed signals for the compositor's main loop.
//
// Connecting to a Signal returns a Listener. Dropping interest in the
// signal is done by calling Disconnect on that Listener, which is always
// safe: on a nil Listener, twice in a row, or from inside the handler
// while the signal is being emitted.
//
// Signals are not safe for concurrent use. Everything that touches them
// runs on one event loop.
package event

// Signal delivers values of type T to connected handlers in connection
// order.
type Signal[T any] struct {
	listeners []*Listener[T]
}

// Listener is one connection of a handler to a Signal.
type Listener[T any] struct {
	sig *Signal[T]
	fn  func(T)
}

// Connect registers fn and returns the Listener that disconnects it.
func (s *Signal[T]) Connect(fn func(T)) *Listener[T] {
	l := &Listener[T]{sig: s, fn: fn}
	s.listeners = append(s.listeners, l)
	return l
}

// Emit calls every connected handler with v. Handlers connected during
// the emission are not called; handlers disconnected during the emission
// are skipped if they have not run yet.
func (s *Signal[T]) Emit(v T) {
	snapshot := make([]*Listener[T], len(s.listeners))
	copy(snapshot, s.listeners)
	for _, l := range snapshot {
		if l.sig != s {
			continue
		}
		l.fn(v)
	}
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// DisconnectAll drops every handler.
func (s *Signal[T]) DisconnectAll() {
	for _, l := range s.listeners {
		l.sig = nil
	}
	s.listeners = nil
}

func (s *Signal[T]) remove(l *Listener[T]) {
	for i, c := range s.listeners {
		if c == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Disconnect removes the handler from its signal.
func (l *Listener[T]) Disconnect() {
	if l == nil || l.sig == nil {
		return
	}
	l.sig.remove(l)
	l.sig = nil
}

// Connected reports whether the handler is still registered.
func (l *Listener[T]) Connected() bool {
	return l != nil && l.sig != nil
}
