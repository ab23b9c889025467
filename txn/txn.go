// Package txn defines the contract between a transaction scheduler and
// the instructions it drives.
//
// A scheduler calls SetPending on every instruction of a batch, then
// Commit on every instruction. Each instruction later reports an Outcome.
// Once every instruction that was not cancelled is Ready, the scheduler
// calls Apply on them. Destroy is called on every instruction when the
// batch is done with it, whatever the outcome.
package txn

import (
	"github.com/rjkroege/xdgtxn/event"
)

// Outcome is reported by an instruction once it knows whether it can be
// applied.
type Outcome int

const (
	// Ready means Apply may be called.
	Ready Outcome = iota + 1
	// Cancel means the instruction must be discarded without Apply.
	Cancel
)

func (o Outcome) String() string {
	switch o {
	case Ready:
		return "ready"
	case Cancel:
		return "cancel"
	}
	return "unknown"
}

// Instruction is one state change for one object.
type Instruction interface {
	// SetPending records the new state as pending. It never waits.
	SetPending()

	// Commit starts making the change real. The outcome may be reported
	// before Commit returns or from a later event-loop callback.
	Commit()

	// Apply makes the change the committed state.
	Apply()

	// Object describes the object that the instruction changes.
	Object() string

	// Outcome fires at most once with Ready, and at most once with Cancel.
	// Cancel may follow Ready when the object is destroyed before Apply.
	Outcome() *event.Signal[Outcome]

	// Destroy releases everything the instruction still holds. It is
	// safe to call more than once.
	Destroy()
}
