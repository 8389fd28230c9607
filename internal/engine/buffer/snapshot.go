package buffer

import "github.com/calebmills/inkwell/internal/engine/rope"

// Snapshot is a read-only view of a buffer at a specific version. It is
// safe for concurrent use and never changes, even as the buffer moves
// on. Because the underlying rope is immutable, taking a snapshot is
// O(1); the text is shared, not copied.
type Snapshot struct {
	content rope.Rope
	version Version
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.content.String()
}

// TextRange returns text in the given byte range.
func (s *Snapshot) TextRange(start, end ByteOffset) string {
	return s.content.Slice(start, end)
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return s.content.Len()
}

// ByteAt returns the byte at the given offset.
func (s *Snapshot) ByteAt(offset ByteOffset) (byte, bool) {
	return s.content.ByteAt(offset)
}

// IsEmpty returns true if the snapshot holds no text.
func (s *Snapshot) IsEmpty() bool {
	return s.content.IsEmpty()
}

// Version returns the buffer version this snapshot was taken at.
func (s *Snapshot) Version() Version {
	return s.version
}

// IsStale reports whether the buffer has moved past this snapshot's
// version. Background consumers compare versions and recompute instead
// of blocking edits.
func (s *Snapshot) IsStale(b *Buffer) bool {
	return b.Version() != s.version
}

// Chunks returns an iterator over the snapshot's text chunks, for
// consumers that stream the content without materializing one string.
func (s *Snapshot) Chunks() *rope.ChunkIterator {
	return s.content.Chunks()
}
