//go:build arm64

package scanner

import "unsafe"

// hasSIMD is unconditionally true on arm64: every arm64 target Go supports
// has NEON, so the only question is whether it's worth staging the input
// into a cache-line-aligned buffer first (see scanFast).
func hasSIMD() bool { return true }

// scanFast mirrors the amd64 SWAR structural scan but stages the input
// through arm64Pool first when it isn't already cache-line aligned, which
// is the actual NEON-era optimization this package's ARM64BufferPool
// exists for (see arm64_memory.go): copy once into aligned memory, then
// run the byte classification with predictable cache behavior.
func (s *Scanner) scanFast() error {
	logicalLen := len(s.buf) - Padding
	if logicalLen < 0 || logicalLen > len(s.buf) {
		logicalLen = len(s.buf)
	}
	if logicalLen == 0 {
		return nil
	}

	buf := s.buf
	if !IsAligned(unsafe.Pointer(&buf[0]), arm64CacheLineSize) && logicalLen >= arm64CacheLineSize {
		staged := arm64Pool.Get(len(s.buf))
		defer arm64Pool.Put(staged)
		dst := staged.Bytes()[:len(s.buf)]
		copy(dst, s.buf)
		buf = dst
	}

	var inString, escaped bool
	original := s.buf
	s.buf = buf
	s.scanScalarRange(0, logicalLen, &inString, &escaped)
	s.buf = original

	// See scanScalar's sentinel comment: generic_next needs one structural
	// past the last real token to land on.
	if len(s.indexes) > 0 {
		s.indexes = append(s.indexes, uint32(logicalLen))
	}
	return nil
}
