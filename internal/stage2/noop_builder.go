package stage2

// NoopBuilder implements Builder without allocating a tape. It still runs
// every primitive through ParseNumber/ScanString so a document with
// well-formed structure but a malformed number or string still fails
// validation; only the container/field bookkeeping is skipped. This is
// what backs Valid(): "is this well-formed JSON" without paying for a DOM.
type NoopBuilder struct{}

func (NoopBuilder) StartDocument(*StructuralIterator) ErrorCode { return Success }
func (NoopBuilder) EndDocument(*StructuralIterator) ErrorCode   { return Success }

func (NoopBuilder) RootPrimitive(iter *StructuralIterator, valueOffset uint32) ErrorCode {
	return validatePrimitive(iter.Buf(), valueOffset)
}

func (NoopBuilder) EmptyObject(*StructuralIterator) ErrorCode { return Success }
func (NoopBuilder) StartObject(*StructuralIterator) ErrorCode { return Success }
func (NoopBuilder) EndObject(*StructuralIterator) ErrorCode   { return Success }
func (NoopBuilder) TryResumeObject(*StructuralIterator) ErrorCode { return Success }
func (NoopBuilder) TryEndObject(*StructuralIterator) ErrorCode    { return Success }

func (NoopBuilder) EmptyObjectField(*StructuralIterator, uint32) ErrorCode { return Success }
func (NoopBuilder) StartObjectField(*StructuralIterator, uint32) ErrorCode { return Success }

func (NoopBuilder) PrimitiveField(iter *StructuralIterator, keyOffset, valueOffset uint32) ErrorCode {
	return validatePrimitive(iter.Buf(), valueOffset)
}

func (NoopBuilder) EmptyArrayField(*StructuralIterator, uint32) ErrorCode { return Success }
func (NoopBuilder) StartArrayField(*StructuralIterator, uint32) ErrorCode { return Success }

func (NoopBuilder) EmptyArray(*StructuralIterator) ErrorCode { return Success }
func (NoopBuilder) StartArray(*StructuralIterator) ErrorCode { return Success }
func (NoopBuilder) EndArray(*StructuralIterator) ErrorCode   { return Success }
func (NoopBuilder) TryResumeArray(*StructuralIterator) ErrorCode { return Success }
func (NoopBuilder) TryResumeArrayValue(iter *StructuralIterator, valueOffset uint32) ErrorCode {
	return validatePrimitive(iter.Buf(), valueOffset)
}
func (NoopBuilder) TryEndArray(*StructuralIterator) ErrorCode { return Success }

func (NoopBuilder) Primitive(iter *StructuralIterator, valueOffset uint32) ErrorCode {
	return validatePrimitive(iter.Buf(), valueOffset)
}

// validatePrimitive checks a scalar value at offset is a well-formed
// string, number, or literal. Object/array values never reach here: the
// grammar only calls a primitive callback for non-container values.
func validatePrimitive(buf []byte, offset uint32) ErrorCode {
	switch buf[offset] {
	case '"':
		_, code := ScanString(buf, offset)
		return code
	case 't':
		return matchLiteral(buf, offset, "true")
	case 'f':
		return matchLiteral(buf, offset, "false")
	case 'n':
		return matchLiteral(buf, offset, "null")
	default:
		_, _, code := ParseNumber(buf, offset)
		return code
	}
}

func matchLiteral(buf []byte, offset uint32, literal string) ErrorCode {
	end := int(offset) + len(literal)
	if end > len(buf) || string(buf[offset:end]) != literal {
		return TapeError
	}
	if end < len(buf) && !isLiteralBoundary(buf[end]) {
		return TapeError
	}
	return Success
}

// isLiteralBoundary reports whether c can legally follow a true/false/null
// literal: a structural separator, whitespace, or the padding a literal
// ending exactly at the buffer's logical end runs into.
func isLiteralBoundary(c byte) bool {
	switch c {
	case ',', ']', '}', ':', ' ', '\t', '\n', '\r', 0:
		return true
	default:
		return false
	}
}
