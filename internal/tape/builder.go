package tape

import (
	"go4.org/mem"

	"github.com/flashjson/flashjson-go/internal/stage2"
	"github.com/flashjson/flashjson-go/internal/unescape"
)

// DefaultMaxDepth is the nesting limit applied when a caller doesn't
// configure one explicitly.
const DefaultMaxDepth = 1024

// DOMBuilder implements stage2.Builder by materializing a Tape. It is
// created fresh for each parse; Result returns whatever has been written so
// far and is only meaningful after Parse completes successfully.
type DOMBuilder struct {
	buf      []byte
	tape     Tape
	stack    []int
	maxDepth uint32
}

// NewDOMBuilder returns a builder over buf. maxDepth of 0 uses
// DefaultMaxDepth.
func NewDOMBuilder(buf []byte, maxDepth uint32) *DOMBuilder {
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	return &DOMBuilder{buf: buf, maxDepth: maxDepth}
}

// Result returns the finished tape. Only meaningful after a successful
// Parse.
func (b *DOMBuilder) Result() *Tape { return &b.tape }

func (b *DOMBuilder) emit(w uint64) { b.tape.words = append(b.tape.words, w) }

func (b *DOMBuilder) pushContainer(tag Tag) stage2.ErrorCode {
	if uint32(len(b.stack)) >= b.maxDepth {
		return stage2.DepthError
	}
	b.stack = append(b.stack, len(b.tape.words))
	b.emit(word(tag, 0))
	return stage2.Success
}

func (b *DOMBuilder) popContainer(endTag Tag) stage2.ErrorCode {
	startIdx := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	endIdx := len(b.tape.words)
	b.tape.words[startIdx] = word(tagOf(b.tape.words[startIdx]), uint64(endIdx))
	b.emit(word(endTag, uint64(startIdx)))
	return stage2.Success
}

func (b *DOMBuilder) writeEmptyContainer(startTag, endTag Tag) {
	startIdx := len(b.tape.words)
	b.emit(word(startTag, uint64(startIdx+1)))
	b.emit(word(endTag, uint64(startIdx)))
}

func (b *DOMBuilder) internString(s []byte) uint64 {
	idx := uint64(len(b.tape.strings))
	b.tape.strings = append(b.tape.strings, string(s))
	return idx
}

func (b *DOMBuilder) writeKey(keyOffset uint32) stage2.ErrorCode {
	closeQuote, code := stage2.ScanString(b.buf, keyOffset)
	if code != stage2.Success {
		return code
	}
	decoded, err := unescape.String(mem.B(b.buf[keyOffset+1 : closeQuote]))
	if err != nil {
		return stage2.StringError
	}
	b.emit(word(TagString, b.internString(decoded)))
	return stage2.Success
}

func (b *DOMBuilder) writePrimitive(offset uint32) stage2.ErrorCode {
	switch b.buf[offset] {
	case '"':
		closeQuote, code := stage2.ScanString(b.buf, offset)
		if code != stage2.Success {
			return code
		}
		decoded, err := unescape.String(mem.B(b.buf[offset+1 : closeQuote]))
		if err != nil {
			return stage2.StringError
		}
		b.emit(word(TagString, b.internString(decoded)))
	case 't':
		if code := literal(b.buf, offset, "true"); code != stage2.Success {
			return code
		}
		b.emit(word(TagTrue, 0))
	case 'f':
		if code := literal(b.buf, offset, "false"); code != stage2.Success {
			return code
		}
		b.emit(word(TagFalse, 0))
	case 'n':
		if code := literal(b.buf, offset, "null"); code != stage2.Success {
			return code
		}
		b.emit(word(TagNull, 0))
	default:
		_, num, code := stage2.ParseNumber(b.buf, offset)
		if code != stage2.Success {
			return code
		}
		if num.IsFloat {
			b.emit(word(TagDouble, 0))
			b.emit(mem64(num.Float))
		} else {
			b.emit(word(TagInt64, 0))
			b.emit(uint64(num.Int))
		}
	}
	return stage2.Success
}

func literal(buf []byte, offset uint32, lit string) stage2.ErrorCode {
	end := int(offset) + len(lit)
	if end > len(buf) || string(buf[offset:end]) != lit {
		return stage2.TapeError
	}
	if end < len(buf) && !literalBoundary(buf[end]) {
		return stage2.TapeError
	}
	return stage2.Success
}

// literalBoundary reports whether c can legally follow a true/false/null
// literal: a structural separator, whitespace, or the padding a literal
// ending exactly at the buffer's logical end runs into.
func literalBoundary(c byte) bool {
	switch c {
	case ',', ']', '}', ':', ' ', '\t', '\n', '\r', 0:
		return true
	default:
		return false
	}
}

// StartDocument/EndDocument have nothing to record: the tape's own bounds
// mark document start and end.
func (b *DOMBuilder) StartDocument(*stage2.StructuralIterator) stage2.ErrorCode { return stage2.Success }
func (b *DOMBuilder) EndDocument(*stage2.StructuralIterator) stage2.ErrorCode   { return stage2.Success }

func (b *DOMBuilder) RootPrimitive(_ *stage2.StructuralIterator, valueOffset uint32) stage2.ErrorCode {
	return b.writePrimitive(valueOffset)
}

func (b *DOMBuilder) EmptyObject(*stage2.StructuralIterator) stage2.ErrorCode {
	b.writeEmptyContainer(TagObjectStart, TagObjectEnd)
	return stage2.Success
}
func (b *DOMBuilder) StartObject(*stage2.StructuralIterator) stage2.ErrorCode {
	return b.pushContainer(TagObjectStart)
}
func (b *DOMBuilder) EndObject(*stage2.StructuralIterator) stage2.ErrorCode {
	return b.popContainer(TagObjectEnd)
}
func (b *DOMBuilder) TryResumeObject(*stage2.StructuralIterator) stage2.ErrorCode { return stage2.Success }
func (b *DOMBuilder) TryEndObject(*stage2.StructuralIterator) stage2.ErrorCode {
	return b.popContainer(TagObjectEnd)
}

func (b *DOMBuilder) EmptyObjectField(_ *stage2.StructuralIterator, keyOffset uint32) stage2.ErrorCode {
	if code := b.writeKey(keyOffset); code != stage2.Success {
		return code
	}
	b.writeEmptyContainer(TagObjectStart, TagObjectEnd)
	return stage2.Success
}
func (b *DOMBuilder) StartObjectField(_ *stage2.StructuralIterator, keyOffset uint32) stage2.ErrorCode {
	if code := b.writeKey(keyOffset); code != stage2.Success {
		return code
	}
	return b.pushContainer(TagObjectStart)
}
func (b *DOMBuilder) PrimitiveField(_ *stage2.StructuralIterator, keyOffset, valueOffset uint32) stage2.ErrorCode {
	if code := b.writeKey(keyOffset); code != stage2.Success {
		return code
	}
	return b.writePrimitive(valueOffset)
}
func (b *DOMBuilder) EmptyArrayField(_ *stage2.StructuralIterator, keyOffset uint32) stage2.ErrorCode {
	if code := b.writeKey(keyOffset); code != stage2.Success {
		return code
	}
	b.writeEmptyContainer(TagArrayStart, TagArrayEnd)
	return stage2.Success
}
func (b *DOMBuilder) StartArrayField(_ *stage2.StructuralIterator, keyOffset uint32) stage2.ErrorCode {
	if code := b.writeKey(keyOffset); code != stage2.Success {
		return code
	}
	return b.pushContainer(TagArrayStart)
}

func (b *DOMBuilder) EmptyArray(*stage2.StructuralIterator) stage2.ErrorCode {
	b.writeEmptyContainer(TagArrayStart, TagArrayEnd)
	return stage2.Success
}
func (b *DOMBuilder) StartArray(*stage2.StructuralIterator) stage2.ErrorCode {
	return b.pushContainer(TagArrayStart)
}
func (b *DOMBuilder) EndArray(*stage2.StructuralIterator) stage2.ErrorCode {
	return b.popContainer(TagArrayEnd)
}
func (b *DOMBuilder) TryResumeArray(*stage2.StructuralIterator) stage2.ErrorCode { return stage2.Success }
func (b *DOMBuilder) TryResumeArrayValue(*stage2.StructuralIterator, uint32) stage2.ErrorCode {
	return stage2.Success
}
func (b *DOMBuilder) TryEndArray(*stage2.StructuralIterator) stage2.ErrorCode {
	return b.popContainer(TagArrayEnd)
}
func (b *DOMBuilder) Primitive(_ *stage2.StructuralIterator, valueOffset uint32) stage2.ErrorCode {
	return b.writePrimitive(valueOffset)
}
