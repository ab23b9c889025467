// Package serial compares configure serials on the 32-bit ring.
//
// A configure serial is issued with each request sent to a client and is
// echoed back once the client has processed that request. Serials wrap
// past zero, so plain integer comparison cannot decide whether a client
// has caught up.
package serial

// Serial is a configure serial. The zero value means that the client has
// not acknowledged anything yet.
type Serial uint32

// half is M/2 for the ring of size M = 2^32.
const half = 1 << 31

// Reached reports whether a client that last acknowledged current has
// processed the request that was issued with target.
//
// Two cases count as reached. Either current is at or past target without
// having wrapped (current >= target and the distance is below half the
// ring), or the counter wrapped past zero after target was issued
// (target > current and the distance exceeds half the ring). A distance
// of exactly half the ring satisfies neither. Nothing is reached while
// current is zero.
//
// A later unrelated request can cause the client to acknowledge a serial
// beyond target without ever echoing target itself. Reached treats that as
// success since every later serial compares past target on the ring. It
// does not detect a target that has fallen more than half a ring behind.
func Reached(current, target Serial) bool {
	if current == 0 {
		return false
	}
	if current >= target && uint32(current-target) < half {
		return true
	}
	if target > current && uint32(target-current) > half {
		return true
	}
	return false
}

// Counter hands out serials the way a display issues them: incrementing by
// one and wrapping at the top of the ring.
type Counter struct {
	last Serial
}

// NewCounter returns a Counter whose next serial is start.
func NewCounter(start Serial) *Counter {
	return &Counter{last: start - 1}
}

// Next returns the next serial.
func (c *Counter) Next() Serial {
	c.last++
	return c.last
}

// Last returns the most recently issued serial.
func (c *Counter) Last() Serial {
	return c.last
}
