package rope

import (
	"io"
	"strings"
)

// ByteOffset addresses a byte position within a rope.
type ByteOffset = int64

// Rope is an immutable sequence of text chunks. The zero value is an
// empty rope and is ready to use. Operations return new Rope values;
// the receiver is never modified.
type Rope struct {
	chunks []chunk
	length ByteOffset
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return Rope{}
	}
	return Rope{
		chunks: splitIntoChunks(s),
		length: ByteOffset(len(s)),
	}
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Rope{}, err
	}
	return FromString(string(data)), nil
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	return r.length
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.length == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	var sb strings.Builder
	sb.Grow(int(r.length))
	for _, c := range r.chunks {
		sb.WriteString(c.data)
	}
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
// The range is clamped to the rope bounds.
func (r Rope) Slice(start, end ByteOffset) string {
	if start < 0 {
		start = 0
	}
	if end > r.length {
		end = r.length
	}
	if start >= end {
		return ""
	}

	var sb strings.Builder
	sb.Grow(int(end - start))

	var pos ByteOffset
	for _, c := range r.chunks {
		cLen := ByteOffset(c.len())
		if pos+cLen <= start {
			pos += cLen
			continue
		}
		if pos >= end {
			break
		}
		from := ByteOffset(0)
		if start > pos {
			from = start - pos
		}
		to := cLen
		if end < pos+cLen {
			to = end - pos
		}
		sb.WriteString(c.data[from:to])
		pos += cLen
	}
	return sb.String()
}

// ByteAt returns the byte at the given offset.
// Returns 0 and false if offset is out of range.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if offset < 0 || offset >= r.length {
		return 0, false
	}
	i, inner := r.locate(offset)
	return r.chunks[i].data[inner], true
}

// Insert inserts text at the given byte offset.
// Returns a new rope; the original is unchanged.
// Offsets beyond the end are clamped to the end.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if offset < 0 {
		offset = 0
	}
	if offset > r.length {
		offset = r.length
	}
	return r.splice(offset, offset, text)
}

// Delete removes text in the byte range [start, end).
// Returns a new rope; the original is unchanged.
func (r Rope) Delete(start, end ByteOffset) Rope {
	if start < 0 {
		start = 0
	}
	if end > r.length {
		end = r.length
	}
	if start >= end {
		return r
	}
	return r.splice(start, end, "")
}

// Replace replaces text in the byte range [start, end) with new text.
// Returns a new rope; the original is unchanged.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	if start < 0 {
		start = 0
	}
	if end > r.length {
		end = r.length
	}
	if start > end {
		start = end
	}
	if start == end && len(text) == 0 {
		return r
	}
	return r.splice(start, end, text)
}

// splice rewrites the range [start, end) as text. Only the chunks
// touching the range are rebuilt; chunks before and after are shared
// with the original rope.
func (r Rope) splice(start, end ByteOffset, text string) Rope {
	if len(r.chunks) == 0 {
		return FromString(text)
	}

	i, si := r.locate(start)
	j, ej := r.locate(end)

	// Pull the edit boundaries back to chunk boundaries so the rebuilt
	// region is contiguous.
	var left, right string
	if i < len(r.chunks) {
		left = r.chunks[i].data[:si]
	}
	if j < len(r.chunks) {
		right = r.chunks[j].data[ej:]
	}

	rebuilt := splitIntoChunks(left + text + right)

	prefix := r.chunks[:i:i]
	suffix := r.chunks[len(r.chunks):]
	if j < len(r.chunks) {
		suffix = r.chunks[j+1:]
	}

	out := make([]chunk, 0, len(prefix)+len(rebuilt)+len(suffix))
	out = append(out, prefix...)
	out = append(out, rebuilt...)
	out = append(out, suffix...)

	return Rope{
		chunks: out,
		length: r.length - (end - start) + ByteOffset(len(text)),
	}
}

// locate finds the chunk containing offset and the position within it.
// For offset == Len() it returns (len(chunks), 0).
func (r Rope) locate(offset ByteOffset) (int, int) {
	var pos ByteOffset
	for i, c := range r.chunks {
		cLen := ByteOffset(c.len())
		if offset < pos+cLen {
			return i, int(offset - pos)
		}
		pos += cLen
	}
	return len(r.chunks), 0
}

// ChunkCount returns the number of chunks. Useful for debugging.
func (r Rope) ChunkCount() int {
	return len(r.chunks)
}

// Equals returns true if two ropes contain the same text.
// This compares content, not structure.
func (r Rope) Equals(other Rope) bool {
	if r.length != other.length {
		return false
	}

	a := r.Chunks()
	b := other.Chunks()
	var abuf, bbuf string
	for {
		if abuf == "" {
			if !a.Next() {
				return bbuf == "" && !b.Next()
			}
			abuf = a.Text()
		}
		if bbuf == "" {
			if !b.Next() {
				return false
			}
			bbuf = b.Text()
		}
		n := len(abuf)
		if len(bbuf) < n {
			n = len(bbuf)
		}
		if abuf[:n] != bbuf[:n] {
			return false
		}
		abuf = abuf[n:]
		bbuf = bbuf[n:]
	}
}
