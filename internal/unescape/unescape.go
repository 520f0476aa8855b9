// Package unescape decodes JSON string escape sequences into raw UTF-8,
// operating on go4.org/mem.RO borrows so callers can defer copying until
// they actually need owned bytes.
package unescape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrIncompleteEscape is returned when src ends mid-escape-sequence.
var ErrIncompleteEscape = errors.New("incomplete escape sequence")

// String decodes src, the content of a JSON string with the surrounding
// quotes already stripped. A \u escape naming a lone surrogate, and an
// unknown escape such as \q, decode to the Unicode replacement character;
// a \u escape without four hex digits is an error. A valid high surrogate
// immediately followed by a
// valid low surrogate is combined into one rune, matching the JSON spec's
// UTF-16 escape model.
func String(src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		out := make([]byte, 0, src.Len())
		return mem.Append(out, src), nil
	}

	out := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		out = mem.Append(out, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, ErrIncompleteEscape
		}

		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\\', '/':
			out = append(out, byte(r))
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			v, rest, err := readHex4(src)
			if err != nil {
				return nil, err
			}
			src = rest
			if isHighSurrogate(v) && src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
				low, rest2, err2 := readHex4(src.SliceFrom(2))
				if err2 == nil && isLowSurrogate(low) {
					v = combineSurrogates(v, low)
					src = rest2
				}
			}
			out = appendRune(out, v)
		default:
			out = appendRune(out, utf8.RuneError)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			out = mem.Append(out, src)
			break
		}
	}
	return out, nil
}

func appendRune(dst []byte, r rune) []byte {
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return append(dst, buf[:n]...)
}

func isHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }

func combineSurrogates(hi, lo rune) rune {
	return 0x10000 + (hi-0xD800)<<10 + (lo - 0xDC00)
}

// readHex4 parses the 4 hex digits following a \u escape and returns the
// rune along with src advanced past them.
func readHex4(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return utf8.RuneError, src, errors.New("incomplete unicode escape")
	}
	var v int32
	for i := 0; i < 4; i++ {
		b := src.At(i)
		v <<= 4
		switch {
		case b >= '0' && b <= '9':
			v += int32(b - '0')
		case b >= 'a' && b <= 'f':
			v += int32(b - 'a' + 10)
		case b >= 'A' && b <= 'F':
			v += int32(b - 'A' + 10)
		default:
			return utf8.RuneError, src, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return rune(v), src.SliceFrom(4), nil
}
