package stage2

// state names the grammar states the driver loop below dispatches on. Go
// has goto, but a switch-driven state loop keeps this translation of the
// original computed-goto grammar readable without labels jumping across
// variable scopes, and it's the shape the driver naturally takes once
// "next state" needs to be a value the depth/streaming bookkeeping can
// also inspect.
type state uint8

const (
	stateStart state = iota
	stateGenericObjectBegin
	stateObjectColon
	stateObjectValue
	stateObjectNext
	stateGenericArrayBegin
	stateArrayValue
	stateArrayNext
	stateGenericNext
	stateDocumentEnd
)

// StructuralParser drives a Builder through the JSON grammar by walking a
// structural index array one token at a time. It carries no allocations of
// its own; all the work of building a result happens in the Builder.
//
// value/valueByte below play the role of the original's shared `value`
// pointer: every state that advances the iterator to find the next
// significant byte stores both here before dispatching, exactly where the
// grammar does `switch (*(value = advance()))`, so a later state can still
// see what the most recent advance produced.
type StructuralParser struct {
	iter  StructuralIterator
	depth uint32
}

// NewStructuralParser creates a parser over buf's structural indexes,
// resuming at startIndex (0 for a fresh, non-streaming parse).
func NewStructuralParser(buf []byte, indexes []uint32, startIndex int) *StructuralParser {
	return &StructuralParser{iter: NewStructuralIterator(buf, indexes, startIndex)}
}

// Parse drives builder through one JSON value (the whole document in
// non-streaming mode, or the next concatenated value in streaming mode).
// It returns the error code and the structural index position the caller
// should resume from on the next streaming call.
func (p *StructuralParser) Parse(builder Builder, streaming bool) (ErrorCode, int) {
	logStart()

	if p.iter.AtEnd() {
		return Empty, p.iter.Pos()
	}
	if code := builder.StartDocument(&p.iter); !code.OK() {
		return code, p.iter.Pos()
	}

	st := stateStart
	var key uint32
	var value uint32
	var valueByte byte

	for {
		switch st {
		case stateStart:
			value, valueByte = p.iter.Advance()
			switch valueByte {
			case '{':
				st = stateGenericObjectBegin
			case '[':
				if !streaming {
					if p.iter.Buf()[p.iter.LastIndex()] != ']' {
						return TapeError, p.iter.Pos()
					}
				}
				st = stateGenericArrayBegin
			default:
				if code := builder.RootPrimitive(&p.iter, value); !code.OK() {
					return code, p.iter.Pos()
				}
				st = stateDocumentEnd
			}

		case stateGenericObjectBegin:
			value, valueByte = p.iter.Advance()
			switch valueByte {
			case '}':
				if code := builder.EmptyObject(&p.iter); !code.OK() {
					return code, p.iter.Pos()
				}
				st = stateGenericNext
			case '"':
				if code := builder.StartObject(&p.iter); !code.OK() {
					return code, p.iter.Pos()
				}
				p.depth++
				st = stateObjectColon
			default:
				logError(int(p.depth), "first field of object missing key")
				return TapeError, p.iter.Pos()
			}

		case stateObjectColon:
			if p.iter.AdvanceChar() != ':' {
				logError(int(p.depth), "first field of object missing :")
				return TapeError, p.iter.Pos()
			}
			st = stateObjectValue

		case stateObjectValue:
			key = value
			value, valueByte = p.iter.Advance()
			switch valueByte {
			case '{':
				value, valueByte = p.iter.Advance()
				switch valueByte {
				case '}':
					if code := builder.EmptyObjectField(&p.iter, key); !code.OK() {
						return code, p.iter.Pos()
					}
					st = stateObjectNext
				case '"':
					if code := builder.StartObjectField(&p.iter, key); !code.OK() {
						return code, p.iter.Pos()
					}
					p.depth++
					key = value
					st = stateObjectColon
				default:
					logError(int(p.depth), "first field of object missing key")
					return TapeError, p.iter.Pos()
				}
			case '[':
				value, valueByte = p.iter.Advance()
				if valueByte == ']' {
					if code := builder.EmptyArrayField(&p.iter, key); !code.OK() {
						return code, p.iter.Pos()
					}
					st = stateObjectNext
				} else {
					if code := builder.StartArrayField(&p.iter, key); !code.OK() {
						return code, p.iter.Pos()
					}
					p.depth++
					st = stateArrayValue
				}
			default:
				if code := builder.PrimitiveField(&p.iter, key, value); !code.OK() {
					return code, p.iter.Pos()
				}
				st = stateObjectNext
			}

		case stateObjectNext:
			switch p.iter.AdvanceChar() {
			case ',':
				value, valueByte = p.iter.Advance()
				if valueByte != '"' {
					logError(int(p.depth), "no key in object field")
					return TapeError, p.iter.Pos()
				}
				st = stateObjectColon
			case '}':
				if code := builder.EndObject(&p.iter); !code.OK() {
					return code, p.iter.Pos()
				}
				p.depth--
				st = stateGenericNext
			default:
				logError(int(p.depth), "no comma between object fields")
				return TapeError, p.iter.Pos()
			}

		case stateGenericArrayBegin:
			value, valueByte = p.iter.Advance()
			if valueByte == ']' {
				if code := builder.EmptyArray(&p.iter); !code.OK() {
					return code, p.iter.Pos()
				}
				st = stateGenericNext
			} else {
				if code := builder.StartArray(&p.iter); !code.OK() {
					return code, p.iter.Pos()
				}
				p.depth++
				st = stateArrayValue
			}

		case stateArrayValue:
			// array_value never re-advances before switching on the value
			// its caller already positioned at (see the "TODO hiccup"
			// comment in the original: generic_array_begin/array_next
			// already called advance() to find this byte).
			switch valueByte {
			case '{':
				value, valueByte = p.iter.Advance()
				switch valueByte {
				case '}':
					if code := builder.EmptyObject(&p.iter); !code.OK() {
						return code, p.iter.Pos()
					}
					st = stateArrayNext
				case '"':
					if code := builder.StartObject(&p.iter); !code.OK() {
						return code, p.iter.Pos()
					}
					p.depth++
					st = stateObjectColon
				default:
					logError(int(p.depth), "first field of object missing key")
					return TapeError, p.iter.Pos()
				}
			case '[':
				value, valueByte = p.iter.Advance()
				if valueByte == ']' {
					if code := builder.EmptyArray(&p.iter); !code.OK() {
						return code, p.iter.Pos()
					}
					st = stateArrayNext
				} else {
					if code := builder.StartArray(&p.iter); !code.OK() {
						return code, p.iter.Pos()
					}
					p.depth++
					st = stateArrayValue
				}
			default:
				if code := builder.Primitive(&p.iter, value); !code.OK() {
					return code, p.iter.Pos()
				}
				st = stateArrayNext
			}

		case stateArrayNext:
			switch p.iter.AdvanceChar() {
			case ',':
				value, valueByte = p.iter.Advance()
				st = stateArrayValue
			case ']':
				if code := builder.EndArray(&p.iter); !code.OK() {
					return code, p.iter.Pos()
				}
				p.depth--
				st = stateGenericNext
			default:
				logError(int(p.depth), "missing comma between fields")
				return TapeError, p.iter.Pos()
			}

		case stateGenericNext:
			switch p.iter.AdvanceChar() {
			case ',':
				value, valueByte = p.iter.Advance()
				switch valueByte {
				case '"':
					switch p.iter.AdvanceChar() {
					case ':':
						if code := builder.TryResumeObject(&p.iter); !code.OK() {
							return code, p.iter.Pos()
						}
						st = stateObjectValue
					case ',':
						if code := builder.TryResumeArrayValue(&p.iter, value); !code.OK() {
							return code, p.iter.Pos()
						}
						// Un-consume the ',' so array_next reads it after
						// array_value records this string element.
						p.iter.BackUp()
						st = stateArrayValue
					case ']':
						// No array_value state follows here to record this
						// trailing element (unlike the ',' branch above), so
						// the primitive is emitted directly before closing.
						if code := builder.Primitive(&p.iter, value); !code.OK() {
							return code, p.iter.Pos()
						}
						if code := builder.EndArray(&p.iter); !code.OK() {
							return code, p.iter.Pos()
						}
						p.depth--
						st = stateGenericNext
					default:
						logError(int(p.depth), "missing comma or colon between values")
						return TapeError, p.iter.Pos()
					}
				case '[':
					if code := builder.TryResumeArray(&p.iter); !code.OK() {
						return code, p.iter.Pos()
					}
					st = stateGenericArrayBegin
				case '{':
					if code := builder.TryResumeArray(&p.iter); !code.OK() {
						return code, p.iter.Pos()
					}
					st = stateGenericObjectBegin
				default:
					if code := builder.TryResumeArray(&p.iter); !code.OK() {
						return code, p.iter.Pos()
					}
					st = stateArrayValue
				}
			case ']':
				if code := builder.TryEndArray(&p.iter); !code.OK() {
					return code, p.iter.Pos()
				}
				p.depth--
				st = stateGenericNext
			case '}':
				if code := builder.TryEndObject(&p.iter); !code.OK() {
					return code, p.iter.Pos()
				}
				p.depth--
				st = stateGenericNext
			default:
				// We overcorrected assuming a comma or closer would follow;
				// back up so document_end sees the same structural again.
				p.iter.BackUp()
				st = stateDocumentEnd
			}

		case stateDocumentEnd:
			if code := builder.EndDocument(&p.iter); !code.OK() {
				return code, p.iter.Pos()
			}
			return p.finish(streaming)
		}
	}
}

func (p *StructuralParser) finish(streaming bool) (ErrorCode, int) {
	pos := p.iter.Pos()
	if p.depth != 0 {
		logError(int(p.depth), "unclosed objects or arrays")
		return TapeError, pos
	}
	if !streaming && !p.iter.AtEnd() {
		logError(0, "more than one JSON value at the root of the document, or extra characters at the end")
		return TapeError, pos
	}
	return Success, pos
}
