package wind

import (
	"fmt"
	"image"

	"github.com/rjkroege/xdgtxn/event"
	"github.com/rjkroege/xdgtxn/geom"
	"github.com/rjkroege/xdgtxn/serial"
)

// SurfaceID identifies a surface for as long as it exists.
type SurfaceID uint64

// Surface is one surface of a view's tree, as provided by the windowing
// library.
type Surface interface {
	ID() SurfaceID

	// Hold and Release adjust the revocable commit hold count. While the
	// count is positive no new buffer of the surface is shown.
	Hold()
	Release()

	// LockPending takes the library's lock on the surface's pending state
	// and returns the token that UnlockCached needs to drop it.
	LockPending() uint32
	UnlockCached(token uint32)

	// SendFrame asks the client for a redraw outside its normal cadence.
	SendFrame()

	// Commits fires each time the client commits new state.
	Commits() *event.Signal[struct{}]
}

// Toplevel is the windowing library's protocol object for a view. Each
// request returns the serial of the configure that carries it.
type Toplevel interface {
	// ConfigureSerial is the last serial the client acknowledged, or 0.
	ConfigureSerial() serial.Serial

	// Tiled returns the tiled edges the library will send or has sent.
	Tiled() Edges

	SetMaximized(maximized bool) serial.Serial
	SetTiled(edges Edges) serial.Serial
	SetSize(width, height int) serial.Serial

	// Geometry is the client's current window geometry. Its origin is
	// the offset of the content inside the surface.
	Geometry() image.Rectangle

	Surface() Surface
}

// Frame is the decoration drawn around a view.
type Frame interface {
	Margins() geom.Margins
}

// View is a toplevel window. Implementations must return untyped nil from
// Toplevel, Surface and Frame when the object does not exist.
type View interface {
	fmt.Stringer

	// Reference counting. Close runs when the last reference is dropped.
	Inc()
	Dec() int
	Close()

	// Destroyed fires when the view goes away while transactions may
	// still be outstanding.
	Destroyed() *event.Signal[struct{}]

	Pending() *State
	Committed() *State

	Toplevel() Toplevel
	Surface() Surface

	// SurfaceTree lists the root surface followed by its sub-surfaces.
	// The tree may change between calls.
	SurfaceTree() []Surface

	Frame() Frame

	// Damage marks the view's screen region for redraw.
	Damage()

	// Size is the rendered size of the view, including anything drawn
	// outside the window geometry.
	Size() image.Point

	// SetOutputGeometry positions the view's surface in output
	// coordinates.
	SetOutputGeometry(r image.Rectangle)

	// UpdateTiledEdges tells observers that the committed tiled edges
	// changed from old.
	UpdateTiledEdges(old Edges)

	// EmitFinalSize publishes the negotiated outer size ahead of apply.
	EmitFinalSize(size image.Point)

	Map(s Surface)
	Unmap()
}

// FrameMargins returns the decoration margins of v, or zero margins when
// v has no frame.
func FrameMargins(v View) geom.Margins {
	if f := v.Frame(); f != nil {
		return f.Margins()
	}
	return geom.Margins{}
}
