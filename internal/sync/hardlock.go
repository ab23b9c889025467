package sync

import (
	"fmt"

	"github.com/rjkroege/xdgtxn/wind"
)

type pendingLock struct {
	surface wind.Surface
	token   uint32
}

// HardLocks records the pending-state lock tokens held on surfaces. The
// recorded surface value outlives its membership in the tree, so a lock
// can be returned after the surface was unmapped.
type HardLocks struct {
	locks []pendingLock
	index map[wind.SurfaceID]int
}

// NewHardLocks returns an empty table.
func NewHardLocks() *HardLocks {
	return &HardLocks{index: make(map[wind.SurfaceID]int)}
}

// Lock takes the pending lock of s unless one is already recorded. It
// reports whether a lock was taken.
func (hl *HardLocks) Lock(s wind.Surface) bool {
	id := s.ID()
	if _, ok := hl.index[id]; ok {
		return false
	}
	token := s.LockPending()
	hl.index[id] = len(hl.locks)
	hl.locks = append(hl.locks, pendingLock{surface: s, token: token})
	return true
}

// LockTree locks every surface of tree and returns how many locks it took.
func (hl *HardLocks) LockTree(tree []wind.Surface) int {
	n := 0
	for _, s := range tree {
		if hl.Lock(s) {
			n++
		}
	}
	return n
}

// UnlockAll returns every recorded token exactly once and empties the
// table.
func (hl *HardLocks) UnlockAll() int {
	locks := hl.locks
	hl.locks = nil
	hl.index = make(map[wind.SurfaceID]int)
	for _, l := range locks {
		l.surface.UnlockCached(l.token)
	}
	return len(locks)
}

// Token returns the token recorded for id.
func (hl *HardLocks) Token(id wind.SurfaceID) (uint32, bool) {
	i, ok := hl.index[id]
	if !ok {
		return 0, false
	}
	l := hl.locks[i]
	if l.surface.ID() != id {
		panic(fmt.Sprintf("sync: hard lock table corrupt: slot %d holds surface %d, indexed as %d", i, l.surface.ID(), id))
	}
	return l.token, true
}

// IsLocked reports whether id carries a pending lock.
func (hl *HardLocks) IsLocked(id wind.SurfaceID) bool {
	_, ok := hl.index[id]
	return ok
}

// Len returns the number of recorded locks.
func (hl *HardLocks) Len() int {
	return len(hl.locks)
}
