package sim

import (
	"io"
	"log/slog"

	"github.com/rjkroege/xdgtxn/event"
	"github.com/rjkroege/xdgtxn/txn"
)

// Batch drives a set of instructions through one transaction: SetPending
// on all, Commit on all, and, once every instruction has an outcome,
// Apply on those that are ready and were not cancelled. Every instruction
// is destroyed when the batch finishes.
type Batch struct {
	insts     []txn.Instruction
	outcomes  []txn.Outcome
	applied   []bool
	listeners []*event.Listener[txn.Outcome]
	started   bool
	done      bool
	log       *slog.Logger

	// Finished fires once the batch is done.
	Finished event.Signal[*Batch]
}

// NewBatch returns a batch of insts. logger may be nil.
func NewBatch(logger *slog.Logger, insts ...txn.Instruction) *Batch {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Batch{
		insts:    insts,
		outcomes: make([]txn.Outcome, len(insts)),
		applied:  make([]bool, len(insts)),
		log:      logger,
	}
}

// Run starts the batch. It returns once every instruction is committed;
// the batch may finish then or on a later client commit.
func (b *Batch) Run() {
	if b.started {
		return
	}
	b.started = true
	for i, in := range b.insts {
		i := i
		b.listeners = append(b.listeners, in.Outcome().Connect(func(o txn.Outcome) {
			b.report(i, o)
		}))
	}
	for _, in := range b.insts {
		in.SetPending()
	}
	for _, in := range b.insts {
		if b.done {
			break
		}
		in.Commit()
	}
	b.maybeFinish()
}

func (b *Batch) report(i int, o txn.Outcome) {
	if b.done {
		return
	}
	b.log.Debug("outcome", "object", b.insts[i].Object(), "index", i, "outcome", o.String())
	if b.outcomes[i] != txn.Cancel {
		b.outcomes[i] = o
	}
	b.maybeFinish()
}

func (b *Batch) maybeFinish() {
	if b.done || !b.started {
		return
	}
	for _, o := range b.outcomes {
		if o == 0 {
			return
		}
	}
	b.finish(true)
}

// Abort destroys every instruction without applying anything.
func (b *Batch) Abort() {
	if b.done {
		return
	}
	b.finish(false)
}

func (b *Batch) finish(apply bool) {
	b.done = true
	for _, l := range b.listeners {
		l.Disconnect()
	}
	if apply {
		for i, in := range b.insts {
			if b.outcomes[i] == txn.Ready {
				in.Apply()
				b.applied[i] = true
			}
		}
	}
	for _, in := range b.insts {
		in.Destroy()
	}
	b.log.Debug("batch finished", "size", len(b.insts), "applied", apply)
	b.Finished.Emit(b)
}

// Done reports whether the batch finished.
func (b *Batch) Done() bool { return b.done }

// Outcome returns the outcome of instruction i, or 0 if there is none yet.
func (b *Batch) Outcome(i int) txn.Outcome { return b.outcomes[i] }

// Applied reports whether instruction i was applied.
func (b *Batch) Applied(i int) bool { return b.applied[i] }

// Len returns the number of instructions.
func (b *Batch) Len() int { return len(b.insts) }
