package history

import (
	"time"

	"github.com/calebmills/inkwell/internal/engine/transaction"
)

// DefaultMaxEntries bounds the undo stack when no cap is configured.
const DefaultMaxEntries = 1000

// EntryInfo is read-only information about one history entry, for
// showing undo/redo lists to users.
type EntryInfo struct {
	Summary   string
	Timestamp time.Time
}

// entry pairs an inverse transaction with when it was recorded.
type entry struct {
	tx *transaction.Transaction
	at time.Time
}

// Log holds the undo and redo stacks for one buffer. Entries are
// inverse transactions: applying the top of the undo stack rolls the
// most recent edit back. Log is not safe for concurrent use; the
// owning buffer serializes access.
type Log struct {
	undo       []entry
	redo       []entry
	maxEntries int
}

// NewLog creates a log bounded to maxEntries undo units.
// Non-positive caps fall back to DefaultMaxEntries.
func NewLog(maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Log{maxEntries: maxEntries}
}

// PushUndo records an inverse transaction as the newest undo unit,
// evicting the oldest entries beyond the cap. It does not touch the
// redo stack; callers decide when the redo future is invalidated.
func (l *Log) PushUndo(tx *transaction.Transaction) {
	l.undo = append(l.undo, entry{tx: tx, at: time.Now()})
	if len(l.undo) > l.maxEntries {
		excess := len(l.undo) - l.maxEntries
		l.undo = append(l.undo[:0], l.undo[excess:]...)
	}
}

// PushRedo records an inverse transaction as the newest redo unit.
func (l *Log) PushRedo(tx *transaction.Transaction) {
	l.redo = append(l.redo, entry{tx: tx, at: time.Now()})
}

// PopUndo removes and returns the newest undo unit.
func (l *Log) PopUndo() (*transaction.Transaction, bool) {
	if len(l.undo) == 0 {
		return nil, false
	}
	e := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	return e.tx, true
}

// PopRedo removes and returns the newest redo unit.
func (l *Log) PopRedo() (*transaction.Transaction, bool) {
	if len(l.redo) == 0 {
		return nil, false
	}
	e := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	return e.tx, true
}

// PeekUndo returns the newest undo unit without removing it.
func (l *Log) PeekUndo() (*transaction.Transaction, bool) {
	if len(l.undo) == 0 {
		return nil, false
	}
	return l.undo[len(l.undo)-1].tx, true
}

// ReplaceTopUndo swaps the newest undo unit for tx. Used when a typing
// run coalesces into the existing top entry.
func (l *Log) ReplaceTopUndo(tx *transaction.Transaction) {
	if len(l.undo) == 0 {
		l.PushUndo(tx)
		return
	}
	l.undo[len(l.undo)-1] = entry{tx: tx, at: time.Now()}
}

// ClearRedo discards the redo stack. A fresh edit makes any previously
// undone future unreachable.
func (l *Log) ClearRedo() {
	l.redo = nil
}

// Clear discards both stacks.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
}

// CanUndo returns true if an undo unit is available.
func (l *Log) CanUndo() bool {
	return len(l.undo) > 0
}

// CanRedo returns true if a redo unit is available.
func (l *Log) CanRedo() bool {
	return len(l.redo) > 0
}

// UndoDepth returns the number of available undo units.
func (l *Log) UndoDepth() int {
	return len(l.undo)
}

// RedoDepth returns the number of available redo units.
func (l *Log) RedoDepth() int {
	return len(l.redo)
}

// MaxEntries returns the undo stack cap.
func (l *Log) MaxEntries() int {
	return l.maxEntries
}

// SetMaxEntries changes the undo stack cap, evicting the oldest
// entries if the stack already exceeds it. Non-positive caps fall back
// to DefaultMaxEntries.
func (l *Log) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	l.maxEntries = n
	if len(l.undo) > n {
		excess := len(l.undo) - n
		l.undo = append(l.undo[:0], l.undo[excess:]...)
	}
}

// UndoInfo returns entry summaries in stack order, oldest first.
func (l *Log) UndoInfo() []EntryInfo {
	return infoFor(l.undo)
}

// RedoInfo returns entry summaries in stack order, oldest first.
func (l *Log) RedoInfo() []EntryInfo {
	return infoFor(l.redo)
}

func infoFor(entries []entry) []EntryInfo {
	out := make([]EntryInfo, len(entries))
	for i, e := range entries {
		out[i] = EntryInfo{Summary: e.tx.Summary(), Timestamp: e.at}
	}
	return out
}
