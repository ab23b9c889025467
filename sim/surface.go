package sim

import (
	"fmt"
	"image"

	"github.com/rjkroege/xdgtxn/event"
	"github.com/rjkroege/xdgtxn/wind"
)

var _ wind.Surface = (*Surface)(nil)

// Surface is a simulated surface. Commits made while a pending lock is
// held are cached and land when the last lock is returned.
type Surface struct {
	id   wind.SurfaceID
	name string
	log  *Log

	size image.Point

	holds     int
	tokens    map[uint32]bool
	nextToken uint32
	cached    []func()

	commits event.Signal[struct{}]

	// Counters for lock balance checks.
	SoftAcquired, SoftReleased int
	HardAcquired, HardReleased int
	Frames                     int
}

func newSurface(id wind.SurfaceID, name string, log *Log) *Surface {
	return &Surface{
		id:     id,
		name:   name,
		log:    log,
		tokens: make(map[uint32]bool),
	}
}

func (s *Surface) String() string { return s.name }

func (s *Surface) ID() wind.SurfaceID { return s.id }

func (s *Surface) Hold() {
	s.holds++
	s.SoftAcquired++
	s.log.Record("%s: hold", s.name)
}

func (s *Surface) Release() {
	if s.holds == 0 {
		panic(fmt.Sprintf("sim: release of %s which is not held", s.name))
	}
	s.holds--
	s.SoftReleased++
	s.log.Record("%s: release", s.name)
}

func (s *Surface) LockPending() uint32 {
	s.nextToken++
	s.tokens[s.nextToken] = true
	s.HardAcquired++
	s.log.Record("%s: lock pending %d", s.name, s.nextToken)
	return s.nextToken
}

func (s *Surface) UnlockCached(token uint32) {
	if !s.tokens[token] {
		panic(fmt.Sprintf("sim: unlock of %s with unknown token %d", s.name, token))
	}
	delete(s.tokens, token)
	s.HardReleased++
	s.log.Record("%s: unlock cached %d", s.name, token)
	if len(s.tokens) == 0 {
		cached := s.cached
		s.cached = nil
		for _, apply := range cached {
			if apply != nil {
				apply()
			}
			s.commits.Emit(struct{}{})
		}
	}
}

func (s *Surface) SendFrame() {
	s.Frames++
	s.log.Record("%s: frame", s.name)
}

func (s *Surface) Commits() *event.Signal[struct{}] { return &s.commits }

// Holds returns the number of commit holds currently taken.
func (s *Surface) Holds() int { return s.holds }

// PendingLocks returns the number of pending locks currently taken.
func (s *Surface) PendingLocks() int { return len(s.tokens) }

// Size is the size of the surface's current buffer.
func (s *Surface) Size() image.Point { return s.size }

// Commit plays a client commit. apply changes the surface's state; it
// runs now, or later if a pending lock is held.
func (s *Surface) Commit(apply func()) {
	if len(s.tokens) > 0 {
		s.log.Record("%s: commit cached", s.name)
		s.cached = append(s.cached, apply)
		return
	}
	s.log.Record("%s: commit", s.name)
	if apply != nil {
		apply()
	}
	s.commits.Emit(struct{}{})
}
