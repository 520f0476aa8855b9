package stage2

import "strconv"

// Number is the decoded result of ParseNumber. IsFloat reports that the
// value is held in Float rather than Int: the literal used a '.' or
// exponent, or it used integer grammar but did not fit in int64 (see
// Overflowed).
type Number struct {
	IsFloat bool
	Int     int64
	Float   float64
	// Overflowed is set when the literal used integer grammar (no '.' or
	// exponent) but didn't fit in int64, so IsFloat was forced true as a
	// fallback representation. Typed on-demand readers use this to tell
	// "asked for the wrong type" apart from "asked for the right type but
	// the value doesn't fit."
	Overflowed bool
}

// ParseNumber validates and decodes the JSON number starting at offset,
// returning the offset one past its last byte. Grammar: -?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?
// The byte after the literal must be one that may also follow a literal
// (see isLiteralBoundary), so "01" or "1x" is a NumberError.
// strconv does the actual base-10 conversion; there is no ecosystem number
// parser in the retrieved corpus that improves on it for this leaf step.
func ParseNumber(buf []byte, offset uint32) (end uint32, num Number, code ErrorCode) {
	start := int(offset)
	i := start
	n := len(buf)

	if i < n && buf[i] == '-' {
		i++
	}
	if i >= n || buf[i] < '0' || buf[i] > '9' {
		return 0, Number{}, NumberError
	}
	if buf[i] == '0' {
		i++
	} else {
		for i < n && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
	}

	isFloat := false
	if i < n && buf[i] == '.' {
		isFloat = true
		i++
		digitsStart := i
		for i < n && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
		if i == digitsStart {
			return 0, Number{}, NumberError
		}
	}

	if i < n && (buf[i] == 'e' || buf[i] == 'E') {
		isFloat = true
		i++
		if i < n && (buf[i] == '+' || buf[i] == '-') {
			i++
		}
		digitsStart := i
		for i < n && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
		if i == digitsStart {
			return 0, Number{}, NumberError
		}
	}

	if i < n && !isLiteralBoundary(buf[i]) {
		return 0, Number{}, NumberError
	}

	text := string(buf[start:i])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, Number{}, NumberError
		}
		return uint32(i), Number{IsFloat: true, Float: f}, Success
	}

	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return 0, Number{}, NumberError
		}
		return uint32(i), Number{IsFloat: true, Float: f, Overflowed: true}, Success
	}
	return uint32(i), Number{Int: v}, Success
}
