package xdg

import (
	"github.com/rjkroege/xdgtxn/txn"
	"github.com/rjkroege/xdgtxn/wind"
)

var _ txn.Instruction = (*TiledEdges)(nil)

// TiledEdges changes which edges of a view are tiled. All four edges
// tiled means maximized.
type TiledEdges struct {
	instruction
	edges wind.Edges
}

// NewTiledEdges returns an instruction that tiles view along edges.
func NewTiledEdges(view wind.View, edges wind.Edges, opts ...Option) *TiledEdges {
	te := &TiledEdges{edges: edges}
	te.init("tiled-edges", view, opts)
	return te
}

func (te *TiledEdges) SetPending() {
	te.log.Debug("pending", "tiled", te.edges.String())
	te.view.Pending().TiledEdges = te.edges
}

func (te *TiledEdges) Commit() {
	te.lockTree()
	tl := te.view.Toplevel()
	if tl == nil || tl.Tiled() == te.edges {
		te.emitFinalSizeAndReady()
		return
	}

	tl.SetMaximized(te.edges == wind.EdgesAll)
	target := tl.SetTiled(te.edges)
	s := tl.Surface()
	s.SendFrame()
	te.waitFor(s, target)
}

func (te *TiledEdges) Apply() {
	te.startApply()
	te.unlockTree()
	committed := te.view.Committed()
	old := committed.TiledEdges
	committed.TiledEdges = te.edges
	te.view.UpdateTiledEdges(old)
}
