// Package rope provides immutable chunked text storage for the editor
// engine. A Rope is a value; every editing operation returns a new Rope
// and leaves the receiver untouched. Unchanged chunks are shared between
// the old and new values, so taking a snapshot of a rope is free and
// concurrent readers never need a lock.
//
// Text is stored as a flat sequence of bounded chunks. Edits rewrite only
// the chunks touching the edited region, so the cost of an edit is
// proportional to the size of the edited region plus one chunk on either
// side, not to the size of the document.
//
// All offsets are byte offsets. Chunk boundaries always fall on UTF-8
// rune boundaries, preferring to land just after a newline.
package rope
