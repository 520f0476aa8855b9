//go:build amd64

package scanner

import "encoding/binary"

// hasSIMD reports whether the CPU has a wide-register instruction set this
// package can exploit. The scan itself is portable Go — see DESIGN.md: no
// assembly kernel exists anywhere in the retrieved corpus for this
// operation, so the "fast path" below is a word-at-a-time bit trick rather
// than real AVX2/SSE4.2 code — but the capability probe still comes from
// golang.org/x/sys/cpu the way upstream simdjson picks an implementation
// at runtime.
func hasSIMD() bool {
	return hasAVX2() || hasSSE42()
}

// scanFast is a SWAR (SIMD-within-a-register) structural scan: it tests 8
// bytes at a time for any structural/quote/scalar-start byte using the
// classic has-zero-byte trick against an XOR mask, only falling back to
// per-byte classification within a word once a hit is found. This is the
// same algorithmic shape AVX2/SSE4.2 structural scanning uses — compare
// against each candidate byte, OR the masks, extract set bits — just
// executed on 8-byte lanes instead of 32/16-byte vector lanes.
func (s *Scanner) scanFast() error {
	var inString, escaped bool
	logicalLen := len(s.buf) - Padding
	if logicalLen < 0 || logicalLen > len(s.buf) {
		logicalLen = len(s.buf)
	}

	i := 0
	for ; i+8 <= logicalLen; i += 8 {
		if !inString && !escaped {
			word := binary.LittleEndian.Uint64(s.buf[i : i+8])
			if !wordHasCandidate(word) {
				continue
			}
		}
		s.scanScalarRange(i, i+8, &inString, &escaped)
	}
	s.scanScalarRange(i, logicalLen, &inString, &escaped)

	// See scanScalar's sentinel comment: generic_next needs one structural
	// past the last real token to land on.
	if len(s.indexes) > 0 {
		s.indexes = append(s.indexes, uint32(logicalLen))
	}
	return nil
}

// candidateBytes are the bytes wordHasCandidate tests for: every
// structural/quote byte plus every byte that can start a number or
// true/false/null literal.
var candidateBytes = [...]byte{'"', ':', ',', '{', '}', '[', ']', 't', 'f', 'n', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}

// wordHasCandidate reports whether any of the 8 bytes packed in word
// matches a candidateBytes entry. It is a fast reject: a false positive
// just means scanScalarRange re-examines bytes it would have visited
// anyway on the scalar path; there are no false negatives.
func wordHasCandidate(word uint64) bool {
	for _, b := range candidateBytes {
		if hasZeroByte(word ^ broadcast(b)) {
			return true
		}
	}
	return false
}

func broadcast(b byte) uint64 {
	return 0x0101010101010101 * uint64(b)
}

// hasZeroByte is the standard branchless "does any byte in this word equal
// zero" test (Bit Twiddling Hacks, "Determine if a word has a byte equal
// to n").
func hasZeroByte(word uint64) bool {
	return (word-0x0101010101010101)&^word&0x8080808080808080 != 0
}

// scanScalarRange runs the exact scalar classification logic over
// s.buf[from:to], threading string/escape state in and out so callers can
// resume a fast-path scan afterward.
func (s *Scanner) scanScalarRange(from, to int, inString, escaped *bool) {
	for i := from; i < to; i++ {
		c := s.buf[i]

		if *escaped {
			*escaped = false
			continue
		}
		if *inString {
			switch c {
			case '\\':
				*escaped = true
			case '"':
				*inString = false
			}
			continue
		}

		class := charClassifier[c]
		switch {
		case class == classQuote:
			s.indexes = append(s.indexes, uint32(i))
			*inString = true
		case class != 0 && class != classWhitespace:
			s.indexes = append(s.indexes, uint32(i))
		case class == classWhitespace:
		case isScalarStart(c) && (i == 0 || charClassifier[s.buf[i-1]] != 0):
			s.indexes = append(s.indexes, uint32(i))
		}
	}
}
