package scenario

import (
	"fmt"
	"image"
	"io"
	"text/tabwriter"

	"github.com/rjkroege/xdgtxn/wind"
)

// BatchReport is how one batch of a scenario ended.
type BatchReport struct {
	Step         int
	Instructions []string
	Outcomes     []string
	Applied      []bool
	Done         bool
}

// Report is the state of the view after the last step.
type Report struct {
	View       string
	Pending    wind.State
	Committed  wind.State
	Mapped     bool
	Closed     bool
	Output     image.Rectangle
	FinalSizes []image.Point
	Batches    []BatchReport
	Ops        []string
}

// Write prints r in a human-readable form. With ops, the operation log
// of the simulated layer is included.
func (r *Report) Write(w io.Writer, ops bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "view\t%s\n", r.View)
	for _, b := range r.Batches {
		for i := range b.Instructions {
			fmt.Fprintf(tw, "step %d\t%s\t%s\tapplied=%v\n", b.Step, b.Instructions[i], b.Outcomes[i], b.Applied[i])
		}
	}
	writeState(tw, "pending", r.Pending)
	writeState(tw, "committed", r.Committed)
	fmt.Fprintf(tw, "mapped\t%v\n", r.Mapped)
	fmt.Fprintf(tw, "closed\t%v\n", r.Closed)
	fmt.Fprintf(tw, "output\t%v\n", r.Output)
	fmt.Fprintf(tw, "final sizes\t%v\n", r.FinalSizes)
	if err := tw.Flush(); err != nil {
		return err
	}
	if ops {
		for _, op := range r.Ops {
			if _, err := fmt.Fprintln(w, op); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeState(w io.Writer, name string, s wind.State) {
	fmt.Fprintf(w, "%s\tmapped=%v\ttiled=%v\tgeometry=%v\tgravity=%v\n", name, s.Mapped, s.TiledEdges, s.Geometry, s.Gravity)
}
