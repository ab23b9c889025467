// Package geom holds the rectangle arithmetic shared by the view model and
// the transaction instructions: decoration margins and gravity anchoring.
package geom

import (
	"fmt"
	"image"
	"strings"
)

// Margins are the widths of the decoration frame on each side of a view's
// content.
type Margins struct {
	Left, Right, Top, Bottom int
}

// Expand grows r outward by m: the content box becomes the outer box.
func Expand(r image.Rectangle, m Margins) image.Rectangle {
	return image.Rect(r.Min.X-m.Left, r.Min.Y-m.Top, r.Max.X+m.Right, r.Max.Y+m.Bottom)
}

// Shrink is the inverse of Expand: the outer box becomes the content box.
func Shrink(r image.Rectangle, m Margins) image.Rectangle {
	return image.Rect(r.Min.X+m.Left, r.Min.Y+m.Top, r.Max.X-m.Right, r.Max.Y-m.Bottom)
}

// Gravity names the corner of a box that keeps its absolute position when
// the box changes size. The zero value anchors the top-left corner.
type Gravity uint32

const (
	GravityRight Gravity = 1 << iota
	GravityBottom

	GravityTopLeft     Gravity = 0
	GravityTopRight            = GravityRight
	GravityBottomLeft          = GravityBottom
	GravityBottomRight         = GravityBottom | GravityRight
)

var gravityNames = map[Gravity]string{
	GravityTopLeft:     "top-left",
	GravityTopRight:    "top-right",
	GravityBottomLeft:  "bottom-left",
	GravityBottomRight: "bottom-right",
}

func (g Gravity) String() string {
	if s, ok := gravityNames[g]; ok {
		return s
	}
	return fmt.Sprintf("Gravity(%d)", uint32(g))
}

// ParseGravity converts names such as "bottom-right" to a Gravity.
func ParseGravity(s string) (Gravity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return GravityTopLeft, nil
	}
	for g, name := range gravityNames {
		if name == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown gravity %q", s)
}

// AlignWithGravity places a box of actual's size so that the corner of
// desired selected by g stays where it is. The opposite edges absorb any
// difference in size.
func AlignWithGravity(desired, actual image.Rectangle, g Gravity) image.Rectangle {
	size := actual.Size()
	origin := desired.Min
	if g&GravityRight != 0 {
		origin.X = desired.Max.X - size.X
	}
	if g&GravityBottom != 0 {
		origin.Y = desired.Max.Y - size.Y
	}
	return image.Rectangle{Min: origin, Max: origin.Add(size)}
}
