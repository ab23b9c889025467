// Package wind models the toplevel views that transactions operate on.
package wind

import (
	"fmt"
	"image"
	"strings"

	"github.com/rjkroege/xdgtxn/geom"
)

// Edges is a bitmask of the view edges that touch a neighbour or the
// output border.
type Edges uint32

const (
	EdgeTop Edges = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight

	EdgesNone Edges = 0
	EdgesAll        = EdgeTop | EdgeBottom | EdgeLeft | EdgeRight
)

var edgeNames = []struct {
	e    Edges
	name string
}{
	{EdgeTop, "top"},
	{EdgeBottom, "bottom"},
	{EdgeLeft, "left"},
	{EdgeRight, "right"},
}

func (e Edges) String() string {
	switch e {
	case EdgesNone:
		return "none"
	case EdgesAll:
		return "all"
	}
	var parts []string
	for _, n := range edgeNames {
		if e&n.e != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := e &^ EdgesAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseEdges accepts "none", "all" or names joined with '|' or ','.
func ParseEdges(s string) (Edges, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return EdgesNone, nil
	case "all":
		return EdgesAll, nil
	}
	var e Edges
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		found := false
		for _, n := range edgeNames {
			if n.name == strings.TrimSpace(f) {
				e |= n.e
				found = true
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown edge %q", f)
		}
	}
	return e, nil
}

// State is one snapshot of a view's transactional state. A view keeps two:
// the pending snapshot written by SetPending and the committed snapshot
// written by Apply.
type State struct {
	Mapped     bool
	TiledEdges Edges
	Geometry   image.Rectangle
	Gravity    geom.Gravity
}
