package xdg

import (
	"image"

	"github.com/rjkroege/xdgtxn/geom"
	"github.com/rjkroege/xdgtxn/txn"
	"github.com/rjkroege/xdgtxn/wind"
)

var _ txn.Instruction = (*Geometry)(nil)

// Geometry moves and resizes a view. The target is the outer box,
// decorations included.
type Geometry struct {
	instruction
	target          image.Rectangle
	gravity         geom.Gravity
	clientInitiated bool
}

// NewGeometry returns an instruction that gives view the outer geometry
// target. A client-initiated change answers a size the client already
// picked, so no configure is sent; the surfaces are held right away so
// that the library cannot show the client's new buffer before apply.
func NewGeometry(view wind.View, target image.Rectangle, clientInitiated bool, opts ...Option) *Geometry {
	g := &Geometry{target: target, clientInitiated: clientInitiated}
	g.init("geometry", view, opts)
	if clientInitiated {
		g.lockTree()
	}
	return g
}

func (g *Geometry) SetPending() {
	g.log.Debug("pending", "geometry", g.target.String())
	g.gravity = g.view.Pending().Gravity
	g.view.Pending().Geometry = g.target
}

func (g *Geometry) Commit() {
	g.lockTree()

	tl := g.view.Toplevel()
	if tl == nil || g.clientInitiated {
		g.emitFinalSizeAndReady()
		return
	}

	content := geom.Shrink(g.target, wind.FrameMargins(g.view))
	target := tl.SetSize(content.Dx(), content.Dy())
	s := tl.Surface()
	s.SendFrame()
	g.waitFor(s, target)
}

func (g *Geometry) Apply() {
	g.startApply()
	g.view.Damage()
	g.unlockTree()

	// The client need not have taken the size it was asked for.
	margins := wind.FrameMargins(g.view)
	var content image.Rectangle
	if tl := g.view.Toplevel(); tl != nil {
		content = tl.Geometry()
	} else {
		content = image.Rectangle{Max: geom.Shrink(g.target, margins).Size()}
	}
	box := geom.Expand(content, margins)

	committed := geom.AlignWithGravity(g.target, box, g.gravity)
	g.view.Committed().Geometry = committed

	// The surface origin sits box.Min away from the window geometry
	// origin; shadows and the like live there.
	origin := committed.Min.Sub(box.Min)
	g.view.SetOutputGeometry(image.Rectangle{Min: origin, Max: origin.Add(g.view.Size())})
	g.view.Damage()
}
