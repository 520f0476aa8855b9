package ondemand

import (
	"strconv"

	"go4.org/mem"

	"github.com/flashjson/flashjson-go/internal/stage2"
	"github.com/flashjson/flashjson-go/internal/unescape"
)

// RawString borrows the bytes between (not including) a JSON string's
// quotes, uninterpreted. See spec §4.6: unescaping is a distinct, opt-in
// step a caller takes only when it needs to.
type RawString struct {
	ro mem.RO
}

// String returns the raw (still-escaped) text.
func (r RawString) String() string { return r.ro.StringCopy() }

// Unescape decodes JSON escape sequences into a plain Go string.
func (r RawString) Unescape() (string, error) {
	decoded, err := unescape.String(r.ro)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Equal compares the raw bytes against lit without unescaping either side.
// This is find_field_raw's matching policy: a raw string that spells A with a unicode escape
// sequence will not equal "A".
func (r RawString) Equal(lit string) bool { return r.ro.EqualString(lit) }

// GetRawJSONString consumes exactly one string value and returns a borrow
// of its contents.
func GetRawJSONString(iter *JsonIterator) (RawString, stage2.ErrorCode) {
	offset, b := iter.Advance()
	if b != '"' {
		iter.BackUp()
		return RawString{}, stage2.IncorrectType
	}
	closeQuote, code := stage2.ScanString(iter.Buf(), offset)
	if code != stage2.Success {
		return RawString{}, code
	}
	return RawString{ro: mem.B(iter.Buf()[offset+1 : closeQuote])}, stage2.Success
}

func numberText(iter *JsonIterator, offset uint32) (text string, isFloatFormat bool, code stage2.ErrorCode) {
	end, num, code := stage2.ParseNumber(iter.Buf(), offset)
	if code != stage2.Success {
		return "", false, code
	}
	return string(iter.Buf()[offset:end]), num.IsFloat && !num.Overflowed, stage2.Success
}

// GetUint64 consumes exactly one value as an unsigned 64-bit integer.
func GetUint64(iter *JsonIterator) (uint64, stage2.ErrorCode) {
	offset, b := iter.Advance()
	if !isNumberLead(b) {
		iter.BackUp()
		return 0, stage2.IncorrectType
	}
	text, isFloat, code := numberText(iter, offset)
	if code != stage2.Success {
		iter.BackUp()
		return 0, code
	}
	if isFloat {
		iter.BackUp()
		return 0, stage2.IncorrectType
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		iter.BackUp()
		return 0, stage2.NumberError
	}
	return v, stage2.Success
}

// GetInt64 consumes exactly one value as a signed 64-bit integer.
func GetInt64(iter *JsonIterator) (int64, stage2.ErrorCode) {
	offset, b := iter.Advance()
	if !isNumberLead(b) {
		iter.BackUp()
		return 0, stage2.IncorrectType
	}
	text, isFloat, code := numberText(iter, offset)
	if code != stage2.Success {
		iter.BackUp()
		return 0, code
	}
	if isFloat {
		iter.BackUp()
		return 0, stage2.IncorrectType
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		iter.BackUp()
		return 0, stage2.NumberError
	}
	return v, stage2.Success
}

// GetDouble consumes exactly one value as a float64, accepting both integer
// and floating-point JSON number grammar.
func GetDouble(iter *JsonIterator) (float64, stage2.ErrorCode) {
	offset, b := iter.Advance()
	if !isNumberLead(b) {
		iter.BackUp()
		return 0, stage2.IncorrectType
	}
	text, _, code := numberText(iter, offset)
	if code != stage2.Success {
		iter.BackUp()
		return 0, code
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		iter.BackUp()
		return 0, stage2.NumberError
	}
	return v, stage2.Success
}

// GetBool consumes exactly one `true` or `false` literal.
func GetBool(iter *JsonIterator) (bool, stage2.ErrorCode) {
	offset, b := iter.Advance()
	switch b {
	case 't':
		if code := matchLiteral(iter.Buf(), offset, "true"); code != stage2.Success {
			iter.BackUp()
			return false, code
		}
		return true, stage2.Success
	case 'f':
		if code := matchLiteral(iter.Buf(), offset, "false"); code != stage2.Success {
			iter.BackUp()
			return false, code
		}
		return false, stage2.Success
	default:
		iter.BackUp()
		return false, stage2.IncorrectType
	}
}

// IsNull reports whether the current value is the `null` literal. It only
// consumes the value when it matches; a non-null value is left in place so
// the caller can try a different typed reader.
func IsNull(iter *JsonIterator) bool {
	if iter.AtEnd() || iter.PeekChar() != 'n' {
		return false
	}
	offset, _ := iter.Advance()
	if matchLiteral(iter.Buf(), offset, "null") != stage2.Success {
		iter.BackUp()
		return false
	}
	return true
}

func isNumberLead(b byte) bool {
	return b == '-' || (b >= '0' && b <= '9')
}

// GetRootUint64, GetRootInt64, GetRootDouble, GetRootBool, RootIsNull are the
// get_root_* variants: at the top level there's no container terminator to
// stop at, so after the scalar these additionally require the structural
// stream to be exhausted.
func GetRootUint64(iter *JsonIterator) (uint64, stage2.ErrorCode) {
	v, code := GetUint64(iter)
	if code != stage2.Success {
		return 0, code
	}
	if !iter.AtEnd() {
		return 0, stage2.TapeError
	}
	return v, stage2.Success
}

func GetRootInt64(iter *JsonIterator) (int64, stage2.ErrorCode) {
	v, code := GetInt64(iter)
	if code != stage2.Success {
		return 0, code
	}
	if !iter.AtEnd() {
		return 0, stage2.TapeError
	}
	return v, stage2.Success
}

func GetRootDouble(iter *JsonIterator) (float64, stage2.ErrorCode) {
	v, code := GetDouble(iter)
	if code != stage2.Success {
		return 0, code
	}
	if !iter.AtEnd() {
		return 0, stage2.TapeError
	}
	return v, stage2.Success
}

func GetRootBool(iter *JsonIterator) (bool, stage2.ErrorCode) {
	v, code := GetBool(iter)
	if code != stage2.Success {
		return false, code
	}
	if !iter.AtEnd() {
		return false, stage2.TapeError
	}
	return v, stage2.Success
}

func RootIsNull(iter *JsonIterator) bool {
	return IsNull(iter) && iter.AtEnd()
}
