//go:build !amd64 && !arm64

package scanner

// hasSIMD is always false on architectures without a dedicated fast path.
func hasSIMD() bool { return false }

// scanFast falls back to the portable scalar scan.
func (s *Scanner) scanFast() error {
	s.scanScalar()
	return nil
}
