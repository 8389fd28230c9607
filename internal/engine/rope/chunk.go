package rope

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the smallest chunk the builder will emit, except
	// possibly for the final chunk of a rope.
	MinChunkSize = 128

	// MaxChunkSize is the largest chunk allowed before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when splitting text.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// chunk is a bounded, immutable run of text.
type chunk struct {
	data string
}

func (c chunk) len() int { return len(c.data) }

// splitIntoChunks cuts a string into chunks of roughly TargetChunkSize
// bytes, each ending on a UTF-8 boundary.
func splitIntoChunks(s string) []chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []chunk{{data: s}}
	}

	chunks := make([]chunk, 0, len(s)/TargetChunkSize+1)
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, chunk{data: remaining})
			break
		}
		split := findSplitPoint(remaining, TargetChunkSize)
		chunks = append(chunks, chunk{data: remaining[:split]})
		remaining = remaining[split:]
	}
	return chunks
}

// findSplitPoint picks a split position near target. It prefers the spot
// just after a nearby newline so lines tend not to straddle chunks, and
// otherwise settles for the closest UTF-8 rune boundary.
func findSplitPoint(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	lo := target - MinChunkSize/4
	if lo < 0 {
		lo = 0
	}
	hi := target + MinChunkSize/4
	if hi > len(s) {
		hi = len(s)
	}

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	// No newline nearby; back up to a rune boundary.
	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}
	return pos
}

// isUTF8Start reports whether b begins a UTF-8 sequence. Continuation
// bytes have the form 10xxxxxx.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
