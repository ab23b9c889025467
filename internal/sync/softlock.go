// Package sync tracks the locks a transaction holds on a view's surfaces.
//
// Two disciplines exist. Soft locks are revocable commit holds that
// tolerate the surface tree changing underneath them. Hard locks are
// pending-state locks taken from the windowing library; each returns a
// token that must be handed back exactly once. A surface is under at most
// one discipline at a time for a given owner.
//
// Lock ordering when both are involved:
//
//	hard lock acquired
//	    └─► soft lock of the same surface dropped
package sync

import (
	"github.com/rjkroege/xdgtxn/wind"
)

// SoftLocks records which surfaces currently carry a commit hold taken by
// its owner.
type SoftLocks struct {
	held  map[wind.SurfaceID]wind.Surface
	order []wind.SurfaceID
}

// NewSoftLocks returns an empty table.
func NewSoftLocks() *SoftLocks {
	return &SoftLocks{held: make(map[wind.SurfaceID]wind.Surface)}
}

// LockTree holds every surface of tree that is not already held and
// returns how many holds it took.
func (sl *SoftLocks) LockTree(tree []wind.Surface) int {
	n := 0
	for _, s := range tree {
		id := s.ID()
		if _, ok := sl.held[id]; ok {
			continue
		}
		s.Hold()
		sl.held[id] = s
		sl.order = append(sl.order, id)
		n++
	}
	return n
}

// UnlockTree releases the surfaces of tree that are still held. Surfaces
// that joined the tree after LockTree, or were already released, are left
// alone. Surfaces that left the tree stay held until ReleaseAll.
func (sl *SoftLocks) UnlockTree(tree []wind.Surface) int {
	n := 0
	for _, s := range tree {
		if sl.Drop(s.ID()) {
			n++
		}
	}
	return n
}

// Drop releases the hold on id if there is one.
func (sl *SoftLocks) Drop(id wind.SurfaceID) bool {
	s, ok := sl.held[id]
	if !ok {
		return false
	}
	delete(sl.held, id)
	sl.forget(id)
	s.Release()
	return true
}

// ReleaseAll releases every remaining hold, in acquisition order.
func (sl *SoftLocks) ReleaseAll() int {
	ids := append([]wind.SurfaceID(nil), sl.order...)
	n := 0
	for _, id := range ids {
		if sl.Drop(id) {
			n++
		}
	}
	return n
}

// IsHeld reports whether id carries a hold.
func (sl *SoftLocks) IsHeld(id wind.SurfaceID) bool {
	_, ok := sl.held[id]
	return ok
}

// Len returns the number of holds.
func (sl *SoftLocks) Len() int {
	return len(sl.held)
}

func (sl *SoftLocks) forget(id wind.SurfaceID) {
	for i, o := range sl.order {
		if o == id {
			sl.order = append(sl.order[:i], sl.order[i+1:]...)
			return
		}
	}
}
