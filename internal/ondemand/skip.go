package ondemand

import "github.com/flashjson/flashjson-go/internal/stage2"

// Skip consumes exactly one JSON value at the iterator's current position,
// descending into nested containers as needed, without decoding anything
// beyond what's required to find the value's end.
func Skip(iter *JsonIterator) stage2.ErrorCode {
	offset, b := iter.Advance()
	switch b {
	case '{':
		if iter.AtEnd() {
			return stage2.TapeError
		}
		if iter.PeekChar() == '}' {
			iter.AdvanceChar()
			return stage2.Success
		}
		_, code := skipContainer(iter, 1)
		return code
	case '[':
		if iter.AtEnd() {
			return stage2.TapeError
		}
		if iter.PeekChar() == ']' {
			iter.AdvanceChar()
			return stage2.Success
		}
		_, code := skipContainer(iter, 1)
		return code
	case '"':
		_, code := stage2.ScanString(iter.Buf(), offset)
		return code
	case 't':
		return matchLiteral(iter.Buf(), offset, "true")
	case 'f':
		return matchLiteral(iter.Buf(), offset, "false")
	case 'n':
		return matchLiteral(iter.Buf(), offset, "null")
	default:
		_, _, code := stage2.ParseNumber(iter.Buf(), offset)
		return code
	}
}

// SkipContainer fast-forwards from just after an already-consumed opening
// bracket or brace to its matching closer, reporting whether it was ']'.
func SkipContainer(iter *JsonIterator) (isArray bool, code stage2.ErrorCode) {
	return skipContainer(iter, 1)
}

// skipContainer counts nested opens/closes among the remaining structurals
// until depth returns to zero. Structural indexes never fall inside string
// content, so a bare depth counter over the raw bytes at each structural is
// sufficient; no recursive descent is needed.
func skipContainer(iter *JsonIterator, depth int) (isArray bool, code stage2.ErrorCode) {
	for depth > 0 {
		if iter.AtEnd() {
			return false, stage2.TapeError
		}
		switch iter.AdvanceChar() {
		case '{', '[':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return false, stage2.Success
			}
		case ']':
			depth--
			if depth == 0 {
				return true, stage2.Success
			}
		}
	}
	return false, stage2.Success
}

func matchLiteral(buf []byte, offset uint32, lit string) stage2.ErrorCode {
	end := int(offset) + len(lit)
	if end > len(buf) || string(buf[offset:end]) != lit {
		return stage2.TapeError
	}
	if end < len(buf) && !isLiteralBoundary(buf[end]) {
		return stage2.TapeError
	}
	return stage2.Success
}

// isLiteralBoundary reports whether c can legally follow a true/false/null
// literal: a structural separator, whitespace, or the padding a literal
// ending exactly at the buffer's logical end runs into. Rejects a scalar
// like `truefoo`, which the scanner marks only at its leading 't' since it
// never looks past a literal's first byte.
func isLiteralBoundary(c byte) bool {
	switch c {
	case ',', ']', '}', ':', ' ', '\t', '\n', '\r', 0:
		return true
	default:
		return false
	}
}
