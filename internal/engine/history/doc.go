// Package history keeps the undo and redo state for a buffer.
//
// The Log holds two stacks of inverse transactions: undo (most recent
// last) and redo. Pushing a fresh edit clears the redo stack: history
// is linear, and a new edit discards any previously undone future. The undo
// stack is bounded; when it overflows, the oldest entries are evicted.
//
// The Coalescer is a policy layer on top of the Log. Runs of ordinary
// left-to-right typing (single-change inserts, each starting exactly
// where the previous one ended, close together in time) are merged
// into a single undo unit so that one undo removes the whole run. A
// session boundary (a pause, a non-contiguous edit, a programmatic
// apply, or an explicit break from a cursor move) closes the run.
// Coalescing never changes the text an undo produces, only how many
// keystrokes one undo covers.
package history
