package stage2

// ScanString walks forward from the byte offset of a string's opening
// quote and returns the offset of its closing quote. Only the opening
// quote is a structural index (see package scanner); everything after it,
// including the closing quote, is found by this escape-aware scan, the
// same division of labor the original's string parser uses.
func ScanString(buf []byte, openQuote uint32) (closeQuote uint32, code ErrorCode) {
	i := openQuote + 1
	for int(i) < len(buf) {
		c := buf[i]
		switch c {
		case '"':
			return i, Success
		case '\\':
			i++
			if int(i) >= len(buf) {
				return 0, StringError
			}
			switch buf[i] {
			case 'u':
				if int(i)+4 >= len(buf) {
					return 0, StringError
				}
				for j := 1; j <= 4; j++ {
					if !isHexDigit(buf[int(i)+j]) {
						return 0, StringError
					}
				}
				i += 4
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			default:
				return 0, StringError
			}
		default:
			if c < 0x20 {
				return 0, StringError
			}
		}
		i++
	}
	return 0, StringError
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
