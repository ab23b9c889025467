// Package scenario replays scripted transactions against the simulated
// windowing layer. A scenario is a YAML document that describes one view
// and a list of steps: batches of instructions, client commits, and view
// destruction.
package scenario

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rjkroege/xdgtxn/geom"
	"github.com/rjkroege/xdgtxn/serial"
	"github.com/rjkroege/xdgtxn/sim"
	"github.com/rjkroege/xdgtxn/txn"
	"github.com/rjkroege/xdgtxn/wind"
	"github.com/rjkroege/xdgtxn/xdg"
)

// Rect is a rectangle given by origin and size.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Rectangle converts r.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Margins are decoration margins.
type Margins struct {
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
}

// View describes the simulated view.
type View struct {
	Name        string   `yaml:"name"`
	Geometry    Rect     `yaml:"geometry"`
	Margins     *Margins `yaml:"margins"`
	Subsurfaces int      `yaml:"subsurfaces"`
	Shadow      int      `yaml:"shadow"`
	FirstSerial uint32   `yaml:"first_serial"`
}

// Instruction describes one instruction of a batch.
type Instruction struct {
	Op              string `yaml:"op"`
	Edges           string `yaml:"edges"`
	Geometry        Rect   `yaml:"geometry"`
	Gravity         string `yaml:"gravity"`
	ClientInitiated bool   `yaml:"client_initiated"`
}

// Client is one commit made by the client.
type Client struct {
	// Ack acknowledges the latest configure. Defaults to true.
	Ack *bool `yaml:"ack"`
	// Serial, if set, is acknowledged instead of the latest configure.
	Serial uint32 `yaml:"serial"`
	// Width and Height give the content size the client picked. Zero
	// means the size it was asked for.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Step is exactly one of its fields.
type Step struct {
	Batch          []Instruction `yaml:"batch"`
	Client         *Client       `yaml:"client"`
	Destroy        bool          `yaml:"destroy"`
	DropToplevel   bool          `yaml:"drop_toplevel"`
	AddSubsurfaces int           `yaml:"add_subsurfaces"`
}

// Scenario is a whole replay script.
type Scenario struct {
	View  View   `yaml:"view"`
	Steps []Step `yaml:"steps"`
}

// Load decodes a scenario.
func Load(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	for i, st := range sc.Steps {
		if n := st.kinds(); n != 1 {
			return nil, fmt.Errorf("step %d: has %d actions; want exactly one", i, n)
		}
	}
	return &sc, nil
}

// LoadFile decodes the scenario stored in path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func (st Step) kinds() int {
	n := 0
	if len(st.Batch) > 0 {
		n++
	}
	if st.Client != nil {
		n++
	}
	if st.Destroy {
		n++
	}
	if st.DropToplevel {
		n++
	}
	if st.AddSubsurfaces > 0 {
		n++
	}
	return n
}

// Build turns desc into an instruction for view.
func Build(view wind.View, desc Instruction, opts ...xdg.Option) (txn.Instruction, error) {
	switch desc.Op {
	case "tiled":
		e, err := wind.ParseEdges(desc.Edges)
		if err != nil {
			return nil, err
		}
		return xdg.NewTiledEdges(view, e, opts...), nil
	case "geometry":
		return xdg.NewGeometry(view, desc.Geometry.Rectangle(), desc.ClientInitiated, opts...), nil
	case "gravity":
		g, err := geom.ParseGravity(desc.Gravity)
		if err != nil {
			return nil, err
		}
		return xdg.NewGravity(view, g, opts...), nil
	case "map":
		return xdg.NewMap(view, opts...), nil
	case "unmap":
		return xdg.NewUnmap(view, opts...), nil
	}
	return nil, fmt.Errorf("unknown instruction %q", desc.Op)
}

// Run plays sc. logger may be nil.
func Run(sc *Scenario, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := sim.ViewConfig{
		Name:        sc.View.Name,
		Geometry:    sc.View.Geometry.Rectangle(),
		Subsurfaces: sc.View.Subsurfaces,
		Shadow:      sc.View.Shadow,
		FirstSerial: serial.Serial(sc.View.FirstSerial),
		Logger:      logger,
	}
	if m := sc.View.Margins; m != nil {
		cfg.Margins = &geom.Margins{Left: m.Left, Right: m.Right, Top: m.Top, Bottom: m.Bottom}
	}
	v := sim.NewView(cfg)

	type played struct {
		step  int
		descs []Instruction
		batch *sim.Batch
	}
	var batches []played

	for i, st := range sc.Steps {
		switch {
		case len(st.Batch) > 0:
			insts := make([]txn.Instruction, 0, len(st.Batch))
			for _, desc := range st.Batch {
				in, err := Build(v, desc, xdg.WithLogger(logger))
				if err != nil {
					for _, done := range insts {
						done.Destroy()
					}
					return nil, fmt.Errorf("step %d: %w", i, err)
				}
				insts = append(insts, in)
			}
			b := sim.NewBatch(logger, insts...)
			batches = append(batches, played{step: i, descs: st.Batch, batch: b})
			b.Run()
		case st.Client != nil:
			tl := v.XDG()
			if tl == nil {
				return nil, fmt.Errorf("step %d: client commit on a view without toplevel", i)
			}
			size := image.Pt(st.Client.Width, st.Client.Height)
			switch {
			case st.Client.Serial != 0:
				tl.ClientCommitSerial(serial.Serial(st.Client.Serial), size)
			default:
				tl.ClientCommit(st.Client.Ack == nil || *st.Client.Ack, size)
			}
		case st.Destroy:
			v.Destroy()
		case st.DropToplevel:
			v.DropToplevel()
		case st.AddSubsurfaces > 0:
			for j := 0; j < st.AddSubsurfaces; j++ {
				v.AddSubsurface()
			}
		}
	}

	rep := &Report{
		View:       v.String(),
		Pending:    *v.Pending(),
		Committed:  *v.Committed(),
		Mapped:     v.Mapped(),
		Output:     v.Output(),
		FinalSizes: v.FinalSizes(),
	}
	for _, p := range batches {
		br := BatchReport{Step: p.step, Done: p.batch.Done()}
		for j, desc := range p.descs {
			br.Instructions = append(br.Instructions, desc.Op)
			br.Outcomes = append(br.Outcomes, outcomeName(p.batch.Outcome(j)))
			br.Applied = append(br.Applied, p.batch.Applied(j))
		}
		rep.Batches = append(rep.Batches, br)
	}

	// Batches still waiting on the client give their locks back.
	for _, p := range batches {
		p.batch.Abort()
	}
	v.Release()
	rep.Closed = v.Closed()
	rep.Ops = v.Log().Ops()
	return rep, nil
}

func outcomeName(o txn.Outcome) string {
	if o == 0 {
		return "waiting"
	}
	return o.String()
}
