// Package xdg implements transaction instructions for xdg-shell toplevel
// views.
//
// Each instruction changes one aspect of one view: tiled edges, geometry,
// gravity, or mapped state. A change that the client has to draw is not
// ready until the client acknowledges the configure serial that carried
// it. Until Apply, the instruction keeps the view's surfaces locked so
// that no buffer drawn for a different state is shown.
package xdg

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rjkroege/xdgtxn/event"
	"github.com/rjkroege/xdgtxn/geom"
	"github.com/rjkroege/xdgtxn/internal/sync"
	"github.com/rjkroege/xdgtxn/serial"
	"github.com/rjkroege/xdgtxn/txn"
	"github.com/rjkroege/xdgtxn/wind"
)

// Option configures an instruction at construction.
type Option func(*instruction)

// WithLogger sends the instruction's transition records to l.
func WithLogger(l *slog.Logger) Option {
	return func(in *instruction) {
		if l != nil {
			in.log = l
		}
	}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// instruction is the state shared by every toplevel instruction.
type instruction struct {
	kind string
	id   string
	view wind.View
	ref  *sync.Ref
	log  *slog.Logger

	soft *sync.SoftLocks
	hard *sync.HardLocks

	onKill   *event.Listener[struct{}]
	onCommit *event.Listener[struct{}]

	outcome event.Signal[txn.Outcome]

	ready     bool
	cancelled bool
	applied   bool
	destroyed bool
}

func (in *instruction) init(kind string, view wind.View, opts []Option) {
	in.kind = kind
	in.id = uuid.NewString()
	in.view = view
	in.log = discard
	in.soft = sync.NewSoftLocks()
	in.hard = sync.NewHardLocks()
	for _, o := range opts {
		o(in)
	}
	in.log = in.log.With("instruction", in.id, "kind", kind, "view", view.String())

	in.ref = sync.Acquire(view)
	in.onKill = view.Destroyed().Connect(func(struct{}) { in.kill() })
}

// Object describes the view the instruction changes.
func (in *instruction) Object() string {
	return in.view.String()
}

// Outcome fires with txn.Ready and txn.Cancel.
func (in *instruction) Outcome() *event.Signal[txn.Outcome] {
	return &in.outcome
}

// ID identifies the instruction in log records.
func (in *instruction) ID() string {
	return in.id
}

// Destroy drops the view reference and any lock still held.
func (in *instruction) Destroy() {
	if in.destroyed {
		return
	}
	in.destroyed = true
	in.onKill.Disconnect()
	in.onCommit.Disconnect()
	in.releaseLocks()
	in.ref.Release()
	in.log.Debug("destroyed")
}

// kill runs when the view is destroyed before the instruction finished.
// It is the only way an instruction gets cancelled.
func (in *instruction) kill() {
	in.onCommit.Disconnect()
	if in.applied || in.cancelled || in.destroyed {
		return
	}
	in.cancelled = true
	in.releaseLocks()
	instructionsTotal.WithLabelValues(in.kind, txn.Cancel.String()).Inc()
	in.log.Debug("cancelled", "was_ready", in.ready)
	in.outcome.Emit(txn.Cancel)
}

func (in *instruction) signalReady() {
	if in.ready || in.cancelled {
		return
	}
	in.ready = true
	instructionsTotal.WithLabelValues(in.kind, txn.Ready.String()).Inc()
	in.log.Debug("ready")
	in.outcome.Emit(txn.Ready)
}

// startApply checks that the scheduler is allowed to apply now.
func (in *instruction) startApply() {
	if !in.ready || in.cancelled || in.applied {
		panic(fmt.Sprintf("xdg: apply of %s instruction on %v (ready=%v cancelled=%v applied=%v)",
			in.kind, in.view, in.ready, in.cancelled, in.applied))
	}
	in.applied = true
	instructionsTotal.WithLabelValues(in.kind, "applied").Inc()
	in.log.Debug("apply")
}

// checkReady decides whether the client has reached target. If it has,
// the commit listener goes away, the surfaces are locked hard, and the
// final size and ready are emitted.
func (in *instruction) checkReady(target serial.Serial) bool {
	tl := in.view.Toplevel()
	if tl == nil {
		// Nobody left to acknowledge anything.
		in.onCommit.Disconnect()
		in.emitFinalSizeAndReady()
		return true
	}

	current := tl.ConfigureSerial()
	if serial.Reached(current, target) {
		in.onCommit.Disconnect()
		in.upgradeLocks()
		in.emitFinalSizeAndReady()
		return true
	}

	in.log.Debug("waiting for client", "current", uint32(current), "target", uint32(target))
	// More frame events let the client redraw to the new state sooner.
	if s := in.view.Surface(); s != nil {
		s.SendFrame()
	}
	return false
}

// waitFor re-runs checkReady on every commit of s until target is reached.
func (in *instruction) waitFor(s wind.Surface, target serial.Serial) {
	configureRequestsTotal.WithLabelValues(in.kind).Inc()
	in.log.Debug("configure sent", "serial", uint32(target))
	in.onCommit.Disconnect()
	in.onCommit = s.Commits().Connect(func(struct{}) {
		in.checkReady(target)
	})
}

// emitFinalSizeAndReady publishes the outer size the view will have after
// apply and then reports ready.
func (in *instruction) emitFinalSizeAndReady() {
	var box image.Rectangle
	if tl := in.view.Toplevel(); tl != nil {
		box = geom.Expand(tl.Geometry(), wind.FrameMargins(in.view))
	} else {
		box = in.view.Pending().Geometry
	}
	in.view.EmitFinalSize(box.Size())
	in.signalReady()
}

func (in *instruction) lockTree() {
	countLocks("soft", "acquire", in.soft.LockTree(in.view.SurfaceTree()))
}

func (in *instruction) unlockTree() {
	countLocks("soft", "release", in.soft.UnlockTree(in.view.SurfaceTree()))
}

func (in *instruction) lockTreeWlr() {
	countLocks("hard", "acquire", in.hard.LockTree(in.view.SurfaceTree()))
}

func (in *instruction) unlockTreeWlr() {
	countLocks("hard", "release", in.hard.UnlockAll())
}

// upgradeLocks moves every surface of the tree to the hard discipline.
// The hard lock is taken before the soft hold goes.
func (in *instruction) upgradeLocks() {
	acquired, dropped := 0, 0
	for _, s := range in.view.SurfaceTree() {
		if in.hard.Lock(s) {
			acquired++
		}
		if in.soft.Drop(s.ID()) {
			dropped++
		}
	}
	countLocks("hard", "acquire", acquired)
	countLocks("soft", "release", dropped)
}

func (in *instruction) releaseLocks() {
	countLocks("soft", "release", in.soft.ReleaseAll())
	in.unlockTreeWlr()
}
