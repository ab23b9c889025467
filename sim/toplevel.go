package sim

import (
	"image"

	"github.com/rjkroege/xdgtxn/serial"
	"github.com/rjkroege/xdgtxn/wind"
)

var _ wind.Toplevel = (*Toplevel)(nil)

// Toplevel is a simulated xdg toplevel. The compositor side sends
// configures through the wind.Toplevel methods; the client side is played
// with ClientCommit and ClientCommitSerial.
type Toplevel struct {
	name    string
	surface *Surface
	log     *Log
	serials *serial.Counter

	acked     serial.Serial
	tiled     wind.Edges
	maximized bool
	requested image.Point
	shadow    int
	geometry  image.Rectangle
}

func newToplevel(name string, s *Surface, log *Log, start serial.Serial, content image.Point, shadow int) *Toplevel {
	t := &Toplevel{
		name:    name,
		surface: s,
		log:     log,
		serials: serial.NewCounter(start),
		shadow:  shadow,
	}
	t.resize(content)
	return t
}

func (t *Toplevel) ConfigureSerial() serial.Serial { return t.acked }
func (t *Toplevel) Tiled() wind.Edges              { return t.tiled }
func (t *Toplevel) Geometry() image.Rectangle      { return t.geometry }
func (t *Toplevel) Surface() wind.Surface          { return t.surface }

func (t *Toplevel) SetMaximized(maximized bool) serial.Serial {
	t.maximized = maximized
	s := t.serials.Next()
	t.log.Record("%s: configure %d maximized=%v", t.name, s, maximized)
	return s
}

func (t *Toplevel) SetTiled(edges wind.Edges) serial.Serial {
	t.tiled = edges
	s := t.serials.Next()
	t.log.Record("%s: configure %d tiled=%v", t.name, s, edges)
	return s
}

func (t *Toplevel) SetSize(width, height int) serial.Serial {
	t.requested = image.Pt(width, height)
	s := t.serials.Next()
	t.log.Record("%s: configure %d size=%dx%d", t.name, s, width, height)
	return s
}

// Maximized reports the last maximized state sent.
func (t *Toplevel) Maximized() bool { return t.maximized }

// LastSerial is the most recent configure serial issued.
func (t *Toplevel) LastSerial() serial.Serial { return t.serials.Last() }

// ClientCommit commits a buffer from the client. With ack it first
// acknowledges the latest configure. The buffer has content size size,
// or, if size is zero, the size the client was last asked for.
func (t *Toplevel) ClientCommit(ack bool, size image.Point) {
	s := t.acked
	if ack {
		s = t.serials.Last()
	}
	t.ClientCommitSerial(s, size)
}

// ClientCommitSerial commits a buffer after acknowledging s.
func (t *Toplevel) ClientCommitSerial(s serial.Serial, size image.Point) {
	if size == (image.Point{}) {
		size = t.requested
		if size == (image.Point{}) {
			size = t.geometry.Size()
		}
	}
	t.surface.Commit(func() {
		t.acked = s
		t.resize(size)
	})
}

func (t *Toplevel) resize(content image.Point) {
	t.geometry = image.Rect(t.shadow, t.shadow, t.shadow+content.X, t.shadow+content.Y)
	t.surface.size = content.Add(image.Pt(2*t.shadow, 2*t.shadow))
}
