// Package inkwell provides a transactional text buffer: every edit is
// an atomic, invertible transaction, and linear undo/redo history is
// kept without snapshotting the document.
//
// The Buffer is the session object. Construct one, mutate it through
// Apply or the single-change convenience methods, and roll edits back
// and forward with Undo and Redo:
//
//	buf := inkwell.NewBufferFromString("original")
//	buf.Insert(8, " text")        // "original text"
//	buf.Undo()                    // "original"
//	buf.Redo()                    // "original text"
//
// Multi-change transactions declare all positions against the text as
// it stood before the transaction; the engine shifts each position by
// the running length delta of the changes applied before it:
//
//	tx := inkwell.NewTransaction(
//	    inkwell.NewChangeSet(
//	        inkwell.Insert(2, "XX"),
//	        inkwell.Delete(3, 5),
//	    ),
//	    inkwell.Metadata{},
//	)
//	err := buf.Apply(tx)
//
// Background consumers take a Snapshot, an immutable O(1) view pinning
// the text and version at capture time, and recompute when the buffer's
// version moves on.
package inkwell

import (
	"io"

	"github.com/calebmills/inkwell/internal/engine/buffer"
	"github.com/calebmills/inkwell/internal/engine/history"
	"github.com/calebmills/inkwell/internal/engine/transaction"
)

// Core types, re-exported from the engine packages.
type (
	// Buffer owns a document's text and its edit history.
	Buffer = buffer.Buffer

	// Snapshot is a read-only view of a buffer at a specific version.
	Snapshot = buffer.Snapshot

	// Option configures a Buffer at construction time.
	Option = buffer.Option

	// Version identifies a buffer state.
	Version = buffer.Version

	// ByteOffset addresses a byte position in the text.
	ByteOffset = buffer.ByteOffset

	// Range is a half-open byte range [Start, End).
	Range = transaction.Range

	// Change is a single primitive edit.
	Change = transaction.Change

	// Kind discriminates the edit primitives.
	Kind = transaction.Kind

	// ChangeSet is an ordered batch of changes applied atomically.
	ChangeSet = transaction.ChangeSet

	// Transaction is the atomic unit of history.
	Transaction = transaction.Transaction

	// Metadata is an opaque JSON document attached to a transaction.
	Metadata = transaction.Metadata

	// CoalesceConfig tunes how typing runs merge into undo units.
	CoalesceConfig = history.CoalesceConfig

	// EntryInfo is read-only information about one history entry.
	EntryInfo = history.EntryInfo
)

// Edit kinds.
const (
	KindInsert  = transaction.KindInsert
	KindDelete  = transaction.KindDelete
	KindReplace = transaction.KindReplace
)

// Errors returned by buffer operations.
var (
	ErrOutOfBounds        = buffer.ErrOutOfBounds
	ErrOverlappingChanges = buffer.ErrOverlappingChanges
	ErrEmptyTransaction   = buffer.ErrEmptyTransaction
	ErrHistoryCorrupt     = buffer.ErrHistoryCorrupt
)

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	return buffer.NewBuffer(opts...)
}

// NewBufferFromString creates a buffer with initial content. The
// initial content is version 0 and carries no history.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	return buffer.NewBufferFromString(s, opts...)
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	return buffer.NewBufferFromReader(r, opts...)
}

// WithMaxHistory bounds the undo stack to n units.
func WithMaxHistory(n int) Option {
	return buffer.WithMaxHistory(n)
}

// WithCoalescing sets the typing-run coalescing policy.
func WithCoalescing(cfg CoalesceConfig) Option {
	return buffer.WithCoalescing(cfg)
}

// WithoutCoalescing disables undo coalescing entirely.
func WithoutCoalescing() Option {
	return buffer.WithoutCoalescing()
}

// DefaultCoalesceConfig returns the standard typing-run policy.
func DefaultCoalesceConfig() CoalesceConfig {
	return history.DefaultCoalesceConfig()
}

// NewRange creates a Range from start and end offsets.
func NewRange(start, end ByteOffset) Range {
	return transaction.NewRange(start, end)
}

// Insert creates a Change that inserts text at a point.
func Insert(at ByteOffset, text string) Change {
	return transaction.Insert(at, text)
}

// Delete creates a Change that removes the range [start, end).
func Delete(start, end ByteOffset) Change {
	return transaction.Delete(start, end)
}

// Replace creates a Change that swaps the range [start, end) for text.
func Replace(start, end ByteOffset, text string) Change {
	return transaction.Replace(start, end, text)
}

// NewChangeSet creates a change set from the given changes.
func NewChangeSet(changes ...Change) *ChangeSet {
	return transaction.NewChangeSet(changes...)
}

// NewTransaction creates a transaction around a change set. Metadata
// may be the zero value.
func NewTransaction(changes *ChangeSet, meta Metadata) *Transaction {
	return transaction.New(changes, meta)
}

// NewTypedTransaction creates a transaction flagged as ordinary typed
// input, making it a candidate for undo coalescing.
func NewTypedTransaction(changes *ChangeSet, meta Metadata) *Transaction {
	return transaction.NewTyped(changes, meta)
}

// NewMetadata wraps a JSON document. Invalid JSON is rejected.
func NewMetadata(raw []byte) (Metadata, error) {
	return transaction.NewMetadata(raw)
}
