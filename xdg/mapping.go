package xdg

import (
	"github.com/rjkroege/xdgtxn/txn"
	"github.com/rjkroege/xdgtxn/wind"
)

var (
	_ txn.Instruction = (*Map)(nil)
	_ txn.Instruction = (*Unmap)(nil)
)

// Map makes a view visible. The compositor decides this on its own, so
// there is nothing for the client to acknowledge.
type Map struct {
	instruction
}

// NewMap returns an instruction that maps view.
func NewMap(view wind.View, opts ...Option) *Map {
	m := &Map{}
	m.init("map", view, opts)
	return m
}

func (m *Map) SetPending() {
	m.log.Debug("pending", "mapped", true)
	m.view.Pending().Mapped = true
}

func (m *Map) Commit() {
	m.lockTree()
	m.emitFinalSizeAndReady()
}

func (m *Map) Apply() {
	m.startApply()
	m.view.Committed().Mapped = true
	m.unlockTree()
	m.view.Map(m.view.Surface())
}

// Unmap hides a view whose surface is about to go away.
type Unmap struct {
	instruction
}

// NewUnmap returns an instruction that unmaps view.
func NewUnmap(view wind.View, opts ...Option) *Unmap {
	u := &Unmap{}
	u.init("unmap", view, opts)
	return u
}

// SetPending locks the surfaces hard at once. They may be destroyed
// before Commit, and a soft hold does not survive that.
func (u *Unmap) SetPending() {
	u.log.Debug("pending", "mapped", false)
	u.view.Pending().Mapped = false
	u.lockTreeWlr()
}

func (u *Unmap) Commit() {
	u.signalReady()
}

func (u *Unmap) Apply() {
	u.startApply()
	u.view.Committed().Mapped = false
	u.unlockTreeWlr()
	u.view.Unmap()
}
