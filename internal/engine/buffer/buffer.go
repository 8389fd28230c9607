package buffer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/calebmills/inkwell/internal/engine/history"
	"github.com/calebmills/inkwell/internal/engine/rope"
	"github.com/calebmills/inkwell/internal/engine/transaction"
)

// ByteOffset addresses a byte position in the buffer. An offset is only
// valid against the version it was computed from.
type ByteOffset = transaction.ByteOffset

// Range is a half-open byte range, re-exported from the transaction
// layer.
type Range = transaction.Range

// Version identifies a buffer state. It increases by exactly one on
// every successful Apply, Undo, or Redo.
type Version uint64

// Buffer owns a document's text and its edit history. All methods are
// safe for concurrent use; every mutation runs inside one exclusive
// critical section and either applies completely or not at all.
type Buffer struct {
	mu        sync.RWMutex
	content   rope.Rope
	version   Version
	log       *history.Log
	coalescer *history.Coalescer
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Buffer{
		content:   rope.New(),
		log:       history.NewLog(cfg.maxHistory),
		coalescer: history.NewCoalescer(cfg.coalesce),
	}
}

// NewBufferFromString creates a buffer with initial content. The
// initial content is version 0 and carries no history.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.content = rope.FromString(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)
	content, err := rope.FromReader(r)
	if err != nil {
		return nil, err
	}
	b.content = content
	return b, nil
}

// Read Operations

// Text returns the full buffer content as a string.
// For large buffers, prefer Snapshot and chunk iteration.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.String()
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Slice(start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Len()
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.ByteAt(offset)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.IsEmpty()
}

// Version returns the current version counter.
func (b *Buffer) Version() Version {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Snapshot returns an immutable view of the current content and
// version. Safe to hold across edits; it never changes.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{content: b.content, version: b.version}
}

// Write Operations

// Apply executes a transaction atomically. On success the inverse is
// pushed onto the undo stack, the redo stack is cleared, and the
// version advances by one. On failure the buffer is untouched: all
// validation happens before any mutation.
func (b *Buffer) Apply(tx *transaction.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	content, inv, err := tx.Apply(b.content)
	if err != nil {
		return err
	}

	b.content = content
	b.log.ClearRedo()

	merged := false
	if b.coalescer.ShouldMerge(tx, now) {
		if top, ok := b.log.PeekUndo(); ok {
			if m, ok := history.MergeInverses(top, inv); ok {
				b.log.ReplaceTopUndo(m)
				merged = true
			}
		}
	}
	if !merged {
		b.log.PushUndo(inv)
	}
	b.coalescer.Observe(tx, now, merged)

	b.version++
	return nil
}

// Undo rolls back the most recent undo unit. Returns false with a nil
// error when there is nothing to undo; the buffer is unchanged. A
// non-nil error means the stored inverse no longer applied, which is an
// invariant violation, not a user error.
func (b *Buffer) Undo() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inv, ok := b.log.PopUndo()
	if !ok {
		return false, nil
	}

	content, redo, err := inv.Apply(b.content)
	if err != nil {
		b.log.PushUndo(inv)
		return false, fmt.Errorf("%w: %v", ErrHistoryCorrupt, err)
	}

	b.content = content
	b.log.PushRedo(redo)
	b.coalescer.Break()
	b.version++
	return true, nil
}

// Redo re-applies the most recently undone unit. Returns false with a
// nil error when the redo stack is empty. Redo does not clear the redo
// stack; only a fresh Apply does.
func (b *Buffer) Redo() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, ok := b.log.PopRedo()
	if !ok {
		return false, nil
	}

	content, inv, err := tx.Apply(b.content)
	if err != nil {
		b.log.PushRedo(tx)
		return false, fmt.Errorf("%w: %v", ErrHistoryCorrupt, err)
	}

	b.content = content
	b.log.PushUndo(inv)
	b.coalescer.Break()
	b.version++
	return true, nil
}

// Convenience constructors for single-change transactions.

// Insert applies a programmatic insertion at the given offset.
func (b *Buffer) Insert(at ByteOffset, text string) error {
	return b.Apply(transaction.New(
		transaction.NewChangeSet(transaction.Insert(at, text)),
		transaction.Metadata{},
	))
}

// Delete applies a programmatic deletion of the range [start, end).
func (b *Buffer) Delete(start, end ByteOffset) error {
	return b.Apply(transaction.New(
		transaction.NewChangeSet(transaction.Delete(start, end)),
		transaction.Metadata{},
	))
}

// Replace applies a programmatic replacement of the range [start, end).
func (b *Buffer) Replace(start, end ByteOffset, text string) error {
	return b.Apply(transaction.New(
		transaction.NewChangeSet(transaction.Replace(start, end, text)),
		transaction.Metadata{},
	))
}

// Type applies an insertion flagged as ordinary typed input, making it
// a candidate for undo coalescing with adjacent typing.
func (b *Buffer) Type(at ByteOffset, text string) error {
	return b.Apply(transaction.NewTyped(
		transaction.NewChangeSet(transaction.Insert(at, text)),
		transaction.Metadata{},
	))
}

// History

// CanUndo returns true if an undo unit is available.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.log.CanUndo()
}

// CanRedo returns true if a redo unit is available.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.log.CanRedo()
}

// UndoDepth returns the number of available undo units.
func (b *Buffer) UndoDepth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.log.UndoDepth()
}

// RedoDepth returns the number of available redo units.
func (b *Buffer) RedoDepth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.log.RedoDepth()
}

// UndoInfo returns summaries of the undo stack, oldest first.
func (b *Buffer) UndoInfo() []history.EntryInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.log.UndoInfo()
}

// RedoInfo returns summaries of the redo stack, oldest first.
func (b *Buffer) RedoInfo() []history.EntryInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.log.RedoInfo()
}

// ClearHistory drops both history stacks without touching the text.
func (b *Buffer) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log.Clear()
	b.coalescer.Break()
}

// BreakCoalescing closes the current typing run, so the next typed
// insert starts a fresh undo unit. Cursor movements and focus changes
// should call this.
func (b *Buffer) BreakCoalescing() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.coalescer.Break()
}

// SetMaxHistory changes the undo stack cap at runtime, evicting the
// oldest entries if the stack already exceeds it.
func (b *Buffer) SetMaxHistory(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log.SetMaxEntries(n)
}

// SetCoalescing replaces the typing coalescing policy at runtime. Any
// open typing run is closed.
func (b *Buffer) SetCoalescing(cfg history.CoalesceConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.coalescer = history.NewCoalescer(cfg)
}
