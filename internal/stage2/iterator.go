package stage2

// StructuralIterator walks the structural index array produced by package
// scanner one entry at a time, handing the parser both the byte offset and
// the byte value at that offset. It never looks at bytes the scanner didn't
// mark as interesting.
type StructuralIterator struct {
	buf     []byte
	indexes []uint32
	pos     int
}

// NewStructuralIterator builds an iterator over indexes, starting at start
// (nonzero when resuming a streaming parse).
func NewStructuralIterator(buf []byte, indexes []uint32, start int) StructuralIterator {
	return StructuralIterator{buf: buf, indexes: indexes, pos: start}
}

// Buf returns the buffer the structural indexes point into.
func (it *StructuralIterator) Buf() []byte { return it.buf }

// Pos returns the index into the structural array of the next entry Advance
// will return; this is what a streaming caller persists across Parse calls.
func (it *StructuralIterator) Pos() int { return it.pos }

// AtEnd reports whether every real structural index has been consumed. The
// scanner appends one trailing sentinel past the last real token (see
// package scanner) so generic_next always has a structural to read at the
// end of a document; that sentinel is never itself unconsumed input.
func (it *StructuralIterator) AtEnd() bool {
	return it.pos >= len(it.indexes)-1
}

// LastIndex returns the byte offset of the final real structural index,
// used by the top-level-array closer lookahead guard. The trailing sentinel
// the scanner appends is excluded.
func (it *StructuralIterator) LastIndex() uint32 { return it.indexes[len(it.indexes)-2] }

// Advance consumes the next structural index, returning its byte offset and
// the byte found there. It panics if called at end, matching the C++
// original's unchecked pointer increment: the parser only calls Advance
// where the grammar guarantees a structural exists.
func (it *StructuralIterator) Advance() (offset uint32, b byte) {
	offset = it.indexes[it.pos]
	it.pos++
	return offset, it.buf[offset]
}

// AdvanceChar is Advance without the offset, used where the parser only
// needs to test which character came next (commas, colons, closers).
func (it *StructuralIterator) AdvanceChar() byte {
	_, b := it.Advance()
	return b
}

// BackUp un-consumes the most recent Advance, used by the document-end
// heuristic: generic_next overcorrects by one structural when it turns out
// there was no comma/closer, so the driver rewinds before deciding the
// document has ended.
func (it *StructuralIterator) BackUp() { it.pos-- }
