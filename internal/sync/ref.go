package sync

import "fmt"

// RefCounted represents a type with reference counting, like a view.
type RefCounted interface {
	Inc()
	Dec() int
	Close()
}

// Ref is one strong reference on a RefCounted. Release drops it; further
// calls do nothing. When the count reaches zero, Close is called.
type Ref struct {
	target RefCounted
	held   bool
}

// Acquire takes a reference on rc.
func Acquire(rc RefCounted) *Ref {
	rc.Inc()
	return &Ref{target: rc, held: true}
}

// Release drops the reference.
func (r *Ref) Release() {
	if !r.held {
		return
	}
	r.held = false
	n := r.target.Dec()
	if n < 0 {
		panic(fmt.Sprintf("sync: reference count of %v dropped to %d", r.target, n))
	}
	if n == 0 {
		r.target.Close()
	}
}

// IsHeld returns true until Release is called.
func (r *Ref) IsHeld() bool {
	return r.held
}
