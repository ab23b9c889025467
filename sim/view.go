package sim

import (
	"image"
	"log/slog"
	"strconv"

	"github.com/rjkroege/xdgtxn/event"
	"github.com/rjkroege/xdgtxn/geom"
	"github.com/rjkroege/xdgtxn/serial"
	"github.com/rjkroege/xdgtxn/wind"
)

var _ wind.View = (*View)(nil)

// Frame is a decoration with fixed margins.
type Frame struct {
	M geom.Margins
}

func (f *Frame) Margins() geom.Margins { return f.M }

// ViewConfig describes a simulated view when it is created.
type ViewConfig struct {
	Name string

	// Geometry is the outer geometry, decorations included.
	Geometry image.Rectangle

	// Margins, when set, gives the view a decoration frame.
	Margins *geom.Margins

	Subsurfaces int

	// Shadow is the width of the client-drawn area outside the window
	// geometry on every side.
	Shadow int

	// FirstSerial is the first configure serial the toplevel issues.
	FirstSerial serial.Serial

	Logger *slog.Logger
}

// View is a simulated toplevel view.
type View struct {
	name string
	log  *Log

	refs   int
	closed bool

	destroyed event.Signal[struct{}]

	pending, committed wind.State

	toplevel *Toplevel
	root     *Surface
	subs     []*Surface
	every    []*Surface
	nextID   wind.SurfaceID
	frame    *Frame

	mapped     bool
	output     image.Rectangle
	finalSizes []image.Point
}

// NewView returns a view with one reference, held by the caller.
func NewView(cfg ViewConfig) *View {
	if cfg.Name == "" {
		cfg.Name = "view"
	}
	if cfg.FirstSerial == 0 {
		cfg.FirstSerial = 1
	}
	v := &View{
		name: cfg.Name,
		log:  NewLog(cfg.Logger),
		refs: 1,
	}
	var m geom.Margins
	if cfg.Margins != nil {
		m = *cfg.Margins
		v.frame = &Frame{M: m}
	}
	v.root = v.newSurface(cfg.Name)
	content := geom.Shrink(cfg.Geometry, m).Size()
	v.toplevel = newToplevel(cfg.Name, v.root, v.log, cfg.FirstSerial, content, cfg.Shadow)
	for i := 0; i < cfg.Subsurfaces; i++ {
		v.AddSubsurface()
	}

	v.pending.Geometry = cfg.Geometry
	v.committed.Geometry = cfg.Geometry
	return v
}

func (v *View) newSurface(name string) *Surface {
	v.nextID++
	s := newSurface(v.nextID, name, v.log)
	v.every = append(v.every, s)
	return s
}

func (v *View) String() string { return v.name }

func (v *View) Inc() { v.refs++ }

func (v *View) Dec() int {
	v.refs--
	return v.refs
}

func (v *View) Close() {
	v.closed = true
	v.log.Record("%s: closed", v.name)
}

// Release drops the reference the creator of the view holds.
func (v *View) Release() {
	if v.Dec() == 0 {
		v.Close()
	}
}

func (v *View) Destroyed() *event.Signal[struct{}] { return &v.destroyed }

func (v *View) Pending() *wind.State   { return &v.pending }
func (v *View) Committed() *wind.State { return &v.committed }

func (v *View) Toplevel() wind.Toplevel {
	if v.toplevel == nil {
		return nil
	}
	return v.toplevel
}

func (v *View) Surface() wind.Surface {
	if v.root == nil {
		return nil
	}
	return v.root
}

func (v *View) SurfaceTree() []wind.Surface {
	var tree []wind.Surface
	if v.root != nil {
		tree = append(tree, v.root)
	}
	for _, s := range v.subs {
		tree = append(tree, s)
	}
	return tree
}

func (v *View) Frame() wind.Frame {
	if v.frame == nil {
		return nil
	}
	return v.frame
}

func (v *View) Damage() {
	v.log.Record("%s: damage", v.name)
}

func (v *View) Size() image.Point {
	if v.root == nil {
		return image.Point{}
	}
	return v.root.size
}

func (v *View) SetOutputGeometry(r image.Rectangle) {
	v.output = r
	v.log.Record("%s: output %v", v.name, r)
}

func (v *View) UpdateTiledEdges(old wind.Edges) {
	v.log.Record("%s: tiled edges %v -> %v", v.name, old, v.committed.TiledEdges)
}

func (v *View) EmitFinalSize(size image.Point) {
	v.finalSizes = append(v.finalSizes, size)
	v.log.Record("%s: final size %dx%d", v.name, size.X, size.Y)
}

func (v *View) Map(s wind.Surface) {
	v.mapped = true
	v.log.Record("%s: map %v", v.name, s)
}

func (v *View) Unmap() {
	v.mapped = false
	v.log.Record("%s: unmap", v.name)
}

// Log returns the operation log shared by the view, its toplevel and its
// surfaces.
func (v *View) Log() *Log { return v.log }

// XDG returns the simulated toplevel, or nil after DropToplevel.
func (v *View) XDG() *Toplevel { return v.toplevel }

// Root returns the root surface.
func (v *View) Root() *Surface { return v.root }

// AddSubsurface adds a sub-surface to the tree.
func (v *View) AddSubsurface() *Surface {
	s := v.newSurface(v.name + "/sub" + strconv.Itoa(int(v.nextID)+1))
	v.subs = append(v.subs, s)
	return s
}

// RemoveSubsurface takes s out of the tree.
func (v *View) RemoveSubsurface(s *Surface) {
	for i, c := range v.subs {
		if c == s {
			v.subs = append(v.subs[:i], v.subs[i+1:]...)
			return
		}
	}
}

// AllSurfaces lists every surface the view ever had, removed ones too.
func (v *View) AllSurfaces() []*Surface {
	return append([]*Surface(nil), v.every...)
}

// DropToplevel destroys the protocol object while the view lives on.
func (v *View) DropToplevel() {
	v.toplevel = nil
	v.log.Record("%s: toplevel gone", v.name)
}

// Destroy destroys the view, cancelling outstanding instructions.
func (v *View) Destroy() {
	v.log.Record("%s: destroyed", v.name)
	v.toplevel = nil
	v.destroyed.Emit(struct{}{})
}

// Refs returns the reference count.
func (v *View) Refs() int { return v.refs }

// Closed reports whether the last reference was dropped.
func (v *View) Closed() bool { return v.closed }

// Mapped reports whether Map was called more recently than Unmap.
func (v *View) Mapped() bool { return v.mapped }

// Output returns the last output geometry set.
func (v *View) Output() image.Rectangle { return v.output }

// FinalSizes returns every final size emitted.
func (v *View) FinalSizes() []image.Point {
	return append([]image.Point(nil), v.finalSizes...)
}
