package rope

// ChunkIterator walks the chunks of a rope in document order.
//
//	iter := r.Chunks()
//	for iter.Next() {
//	    process(iter.Text())
//	}
type ChunkIterator struct {
	chunks []chunk
	index  int
}

// Chunks returns an iterator over the rope's chunks.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{chunks: r.chunks, index: -1}
}

// Next advances to the next chunk. Returns false when exhausted.
func (it *ChunkIterator) Next() bool {
	if it.index+1 >= len(it.chunks) {
		return false
	}
	it.index++
	return true
}

// Text returns the current chunk's text.
// Only valid after a successful Next.
func (it *ChunkIterator) Text() string {
	if it.index < 0 || it.index >= len(it.chunks) {
		return ""
	}
	return it.chunks[it.index].data
}
