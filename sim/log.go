// Package sim is a simulated windowing layer. It implements the
// collaborator interfaces of package wind in memory, records every
// operation it receives, and lets a test play the part of the client.
//
// It also contains Batch, a minimal scheduler that drives instructions
// in the order a real transaction manager would.
package sim

import (
	"context"
	"fmt"
	"log/slog"
)

// Log accumulates the operations performed on simulated objects. It can
// mirror them to a slog.Logger.
type Log struct {
	ops    []string
	logger *slog.Logger
}

// NewLog returns a Log. logger may be nil.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Record appends one operation.
func (l *Log) Record(format string, args ...any) {
	op := fmt.Sprintf(format, args...)
	l.ops = append(l.ops, op)
	if l.logger != nil {
		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "sim", slog.String("op", op))
	}
}

// Ops returns the operations recorded since the last Clear.
func (l *Log) Ops() []string {
	return append([]string(nil), l.ops...)
}

// Clear forgets the recorded operations.
func (l *Log) Clear() {
	l.ops = nil
}
