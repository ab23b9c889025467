package xdg

import (
	"github.com/rjkroege/xdgtxn/geom"
	"github.com/rjkroege/xdgtxn/txn"
	"github.com/rjkroege/xdgtxn/wind"
)

var _ txn.Instruction = (*Gravity)(nil)

// Gravity sets the corner that later geometry changes keep in place. The
// client never sees it.
type Gravity struct {
	instruction
	gravity geom.Gravity
}

// NewGravity returns an instruction that sets the gravity of view.
func NewGravity(view wind.View, g geom.Gravity, opts ...Option) *Gravity {
	gr := &Gravity{gravity: g}
	gr.init("gravity", view, opts)
	return gr
}

func (gr *Gravity) SetPending() {
	gr.log.Debug("pending", "gravity", gr.gravity.String())
	gr.view.Pending().Gravity = gr.gravity
}

func (gr *Gravity) Commit() {
	gr.emitFinalSizeAndReady()
}

func (gr *Gravity) Apply() {
	gr.startApply()
	gr.view.Committed().Gravity = gr.gravity
}
