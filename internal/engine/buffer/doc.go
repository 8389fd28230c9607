// Package buffer provides the transactional text buffer at the heart
// of the engine. A Buffer owns its text, applies every edit as an
// atomic, invertible transaction, and keeps linear undo/redo history
// without snapshotting the document.
//
// All mutation goes through Apply, Undo, and Redo. Apply validates the
// whole transaction before touching any text, pushes the computed
// inverse onto the undo stack, discards any previously undone future,
// and advances the version counter. Undo and Redo replay inverses
// between the two stacks. Undo cost is proportional to the edited
// region, not to the document.
//
// The version counter increases by exactly one on every successful
// Apply, Undo, or Redo and is the sole staleness signal: any offset or
// derived index computed at version N is invalid once the version moves
// past N. Background consumers should take a Snapshot (an immutable
// view pinning the text and version at capture time) and recompute when
// the buffer's version no longer matches, rather than holding any lock
// across their work.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("original")
//	buf.Insert(8, " text")        // "original text"
//	buf.Undo()                    // "original"
//	buf.Redo()                    // "original text"
//
// Thread safety: all methods are safe for concurrent use. Writers
// serialize through an exclusive lock; readers either take a shared
// lock briefly or work from a Snapshot.
package buffer
