// Package scanner implements Stage 1 of the JSON engine: it turns a raw
// input buffer into a padded buffer plus an ordered array of byte offsets
// identifying every structural character and the first byte of every
// scalar literal. Stage 2 (package stage2) consumes that index array; this
// package never validates JSON grammar, it only locates the bytes that
// matter.
package scanner

import "sync"

// Padding is the number of sentinel bytes appended beyond the logical end
// of every buffer this package hands back, guaranteeing that a structural
// scan can always read a few bytes past the last real byte without
// faulting. See spec §3 "Input buffer".
const Padding = 64

// PadBuffer returns data followed by at least Padding zero bytes. If data
// already has enough spare capacity the padding is appended in place;
// otherwise a new backing array is allocated. The returned slice's length
// is len(data) + Padding; content ends at the original len(data).
func PadBuffer(data []byte) []byte {
	if cap(data)-len(data) >= Padding {
		padded := data[:len(data)+Padding]
		for i := len(data); i < len(padded); i++ {
			padded[i] = 0
		}
		return padded
	}
	padded := make([]byte, len(data)+Padding)
	copy(padded, data)
	return padded
}

// charClass bits. Stage 1 only needs to know "structural or not"; grammar
// interpretation is entirely stage2's concern.
const (
	classQuote uint8 = 1 << iota
	classColon
	classComma
	classLBrace
	classRBrace
	classLBracket
	classRBracket
	classWhitespace
)

var charClassifier [256]uint8

func init() {
	charClassifier['"'] = classQuote
	charClassifier[':'] = classColon
	charClassifier[','] = classComma
	charClassifier['{'] = classLBrace
	charClassifier['}'] = classRBrace
	charClassifier['['] = classLBracket
	charClassifier[']'] = classRBracket
	charClassifier[' '] = classWhitespace
	charClassifier['\t'] = classWhitespace
	charClassifier['\n'] = classWhitespace
	charClassifier['\r'] = classWhitespace
}

// Scanner produces the structural index array for one buffer at a time. It
// is pooled: callers should call Release when done so its backing slice is
// reused by the next Scan.
type Scanner struct {
	buf     []byte
	indexes []uint32
}

var scannerPool = sync.Pool{
	New: func() interface{} {
		return &Scanner{indexes: make([]uint32, 0, 1024)}
	},
}

// New returns a Scanner from the pool.
func New() *Scanner {
	return scannerPool.Get().(*Scanner)
}

// Release returns the Scanner to the pool. The Scanner must not be used
// afterward.
func (s *Scanner) Release() {
	s.buf = nil
	s.indexes = s.indexes[:0]
	scannerPool.Put(s)
}

// Scan computes the structural index array for data, which must already be
// padded (see PadBuffer). It picks the architecture-specific fast path
// when the CPU supports it and falls back to the portable scalar scan
// otherwise. The returned slice is owned by the Scanner and is invalidated
// by the next call to Scan or by Release.
func (s *Scanner) Scan(data []byte) ([]uint32, error) {
	s.buf = data
	s.indexes = s.indexes[:0]

	if hasSIMD() {
		if err := s.scanFast(); err != nil {
			return nil, err
		}
		return s.indexes, nil
	}
	s.scanScalar()
	return s.indexes, nil
}

// ScanFast forces the architecture-specific fast path, bypassing the
// hasSIMD() capability probe. Exported for benchmarks that want to compare
// the two paths directly.
func (s *Scanner) ScanFast(data []byte) ([]uint32, error) {
	s.buf = data
	s.indexes = s.indexes[:0]
	if err := s.scanFast(); err != nil {
		return nil, err
	}
	return s.indexes, nil
}

// HasFastPath reports whether the current CPU supports the accelerated
// structural scan.
func HasFastPath() bool { return hasSIMD() }

// GetStructuralIndices returns the index array most recently produced by
// Scan or ScanFast. The returned slice is owned by the Scanner and is
// invalidated by the next call to Scan, ScanFast, or Release.
func (s *Scanner) GetStructuralIndices() []uint32 { return s.indexes }

// scanScalar walks the buffer one byte at a time, tracking whether we are
// inside a string, and records the offset of every structural character
// and the first byte of every string/number/true/false/null literal. Only
// the *opening* quote of a string is recorded: its content and closing
// quote are located later by an escape-aware forward scan from that
// offset, not by a second structural entry, so stage2's grammar can rely
// on "the structural following a string value is always a delimiter". A
// byte starts a number or literal when it is a digit, '-', 't', 'f' or 'n'
// *and* the immediately preceding byte was itself structural or
// whitespace (or this is the first byte of the buffer) — i.e. it is not
// the continuation of a literal already in progress.
func (s *Scanner) scanScalar() {
	inString := false
	escaped := false
	logicalLen := len(s.buf) - Padding
	if logicalLen < 0 || logicalLen > len(s.buf) {
		logicalLen = len(s.buf)
	}

	for i := 0; i < logicalLen; i++ {
		c := s.buf[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		class := charClassifier[c]
		switch {
		case class == classQuote:
			s.indexes = append(s.indexes, uint32(i))
			inString = true
		case class != 0 && class != classWhitespace:
			s.indexes = append(s.indexes, uint32(i))
		case class == classWhitespace:
			// not structural, not a value start
		case isScalarStart(c) && (i == 0 || charClassifier[s.buf[i-1]] != 0):
			s.indexes = append(s.indexes, uint32(i))
		}
	}

	// generic_next always reads one structural past the last real token
	// before deciding a container or the document itself has ended; give it
	// something to land on so that read never runs past the index array.
	// The sentinel points at the first padding byte, which classifies as
	// nothing, so it never matches ',', ']' or '}' and generic_next backs
	// up onto it. Omitted for a genuinely empty scan, which callers detect
	// by an empty index array.
	if len(s.indexes) > 0 {
		s.indexes = append(s.indexes, uint32(logicalLen))
	}
}

// isScalarStart reports whether c can begin a JSON number or literal.
func isScalarStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == 't' || c == 'f' || c == 'n'
}
