package scenario

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rjkroege/xdgtxn/geom"
	"github.com/rjkroege/xdgtxn/sim"
	"github.com/rjkroege/xdgtxn/wind"
)

func runFile(t *testing.T, name string) *Report {
	t.Helper()
	sc, err := LoadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("LoadFile(%q): %v", name, err)
	}
	rep, err := Run(sc, nil)
	if err != nil {
		t.Fatalf("Run(%q): %v", name, err)
	}
	return rep
}

func TestGravityScenario(t *testing.T) {
	rep := runFile(t, "gravity.yaml")

	wantBatches := []BatchReport{
		{
			Step:         0,
			Instructions: []string{"gravity", "geometry"},
			Outcomes:     []string{"ready", "ready"},
			Applied:      []bool{true, true},
			Done:         true,
		},
		{
			Step:         3,
			Instructions: []string{"tiled"},
			Outcomes:     []string{"ready"},
			Applied:      []bool{true},
			Done:         true,
		},
	}
	if diff := cmp.Diff(wantBatches, rep.Batches); diff != "" {
		t.Errorf("batches mismatch (-want +got):\n%s", diff)
	}

	want := wind.State{
		TiledEdges: wind.EdgesAll,
		Geometry:   image.Rect(20, 20, 800, 600),
		Gravity:    geom.GravityBottomRight,
	}
	if got := rep.Committed; got != want {
		t.Errorf("committed: got %+v, want %+v", got, want)
	}
	if got, want := rep.Output, image.Rect(20, 20, 800, 600); got != want {
		t.Errorf("output: got %v, want %v", got, want)
	}
	wantSizes := []image.Point{{640, 480}, {780, 580}, {800, 600}}
	if diff := cmp.Diff(wantSizes, rep.FinalSizes); diff != "" {
		t.Errorf("final sizes mismatch (-want +got):\n%s", diff)
	}
	if !rep.Closed {
		t.Error("view still referenced after the scenario")
	}
}

func TestDestroyScenario(t *testing.T) {
	rep := runFile(t, "destroy.yaml")

	if got, want := len(rep.Batches), 2; got != want {
		t.Fatalf("got %d batches, want %d", got, want)
	}
	geo := rep.Batches[1]
	if got, want := geo.Outcomes, []string{"cancel"}; !cmp.Equal(got, want) {
		t.Errorf("geometry outcome: got %v, want %v", got, want)
	}
	if geo.Applied[0] {
		t.Error("cancelled geometry was applied")
	}
	if !rep.Mapped || !rep.Committed.Mapped {
		t.Error("map from the first batch was lost")
	}
	if got, want := rep.Committed.Geometry, image.Rect(0, 0, 300, 200); got != want {
		t.Errorf("committed geometry: got %v, want %v", got, want)
	}
	if got, want := rep.Pending.Geometry, image.Rect(10, 10, 410, 310); got != want {
		t.Errorf("pending geometry: got %v, want %v", got, want)
	}
	if !rep.Closed {
		t.Error("view still referenced after destroy")
	}
}

func TestWrapScenario(t *testing.T) {
	rep := runFile(t, "wrap.yaml")

	for _, b := range rep.Batches {
		if !b.Done || !b.Applied[0] {
			t.Errorf("step %d: done=%v applied=%v", b.Step, b.Done, b.Applied)
		}
	}
	if got, want := rep.Committed.Geometry, image.Rect(0, 0, 200, 150); got != want {
		t.Errorf("committed geometry: got %v, want %v", got, want)
	}
	if rep.Mapped {
		t.Error("view mapped after unmap")
	}
}

func TestUnfinishedBatchIsAborted(t *testing.T) {
	sc, err := Load(strings.NewReader(`
view:
  name: slow
  geometry: {x: 0, y: 0, w: 100, h: 100}
  subsurfaces: 2
steps:
  - batch:
      - {op: tiled, edges: "left|top"}
`))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := Run(sc, nil)
	if err != nil {
		t.Fatal(err)
	}
	b := rep.Batches[0]
	if b.Done {
		t.Error("batch finished without a client commit")
	}
	if got, want := b.Outcomes[0], "waiting"; got != want {
		t.Errorf("outcome: got %q, want %q", got, want)
	}
	if !rep.Closed {
		t.Error("aborted instruction kept its view reference")
	}
	last := rep.Ops[len(rep.Ops)-1]
	if got, want := last, "slow: closed"; got != want {
		t.Errorf("last op: got %q, want %q", got, want)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "two actions",
			doc:  "steps:\n  - {destroy: true, drop_toplevel: true}\n",
			want: "step 0: has 2 actions",
		},
		{
			name: "no action",
			doc:  "steps:\n  - {}\n",
			want: "step 0: has 0 actions",
		},
		{
			name: "unknown field",
			doc:  "view: {name: x, colour: red}\n",
			want: "colour",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.doc))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got error %v, want one containing %q", err, tc.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	v := sim.NewView(sim.ViewConfig{Name: "b", Geometry: image.Rect(0, 0, 10, 10)})
	defer v.Release()

	for _, tc := range []struct {
		desc    Instruction
		wantErr bool
	}{
		{desc: Instruction{Op: "tiled", Edges: "top,bottom"}},
		{desc: Instruction{Op: "geometry", Geometry: Rect{W: 5, H: 5}, ClientInitiated: true}},
		{desc: Instruction{Op: "gravity", Gravity: "top-right"}},
		{desc: Instruction{Op: "map"}},
		{desc: Instruction{Op: "unmap"}},
		{desc: Instruction{Op: "tiled", Edges: "middle"}, wantErr: true},
		{desc: Instruction{Op: "gravity", Gravity: "up"}, wantErr: true},
		{desc: Instruction{Op: "resize"}, wantErr: true},
	} {
		in, err := Build(v, tc.desc)
		if (err != nil) != tc.wantErr {
			t.Errorf("Build(%+v): error %v, want error %v", tc.desc, err, tc.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if got, want := in.Object(), "b"; got != want {
			t.Errorf("Build(%+v).Object() = %q, want %q", tc.desc, got, want)
		}
		in.Destroy()
	}
	if got := v.Refs(); got != 1 {
		t.Errorf("refs after destroying every instruction: got %d, want 1", got)
	}
}

func TestReportWrite(t *testing.T) {
	rep := runFile(t, "wrap.yaml")
	var buf bytes.Buffer
	if err := rep.Write(&buf, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"view", "wrap", "geometry", "ready", "applied=true", "wrap: unmap"} {
		if !strings.Contains(out, want) {
			t.Errorf("report lacks %q:\n%s", want, out)
		}
	}
}
