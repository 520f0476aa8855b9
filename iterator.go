package flashjson

import (
	"github.com/flashjson/flashjson-go/internal/ondemand"
	"github.com/flashjson/flashjson-go/internal/scanner"
	"github.com/flashjson/flashjson-go/internal/stage2"
)

// RawString borrows a JSON string's bytes without unescaping them.
type RawString = ondemand.RawString

// Iterator is the on-demand pull-parsing façade: it never materializes a
// tape (compare Document), decoding only the bytes a caller actually asks
// for. It shares one cursor across every LazyObject/LazyArray obtained from
// it or from each other; see LazyObject.Enter*/LazyArray.Enter* for the
// lease discipline that keeps nested walks from corrupting one another.
type Iterator struct {
	cursor *ondemand.JsonIterator
}

// NewIterator scans data and returns an Iterator positioned at its first
// structural byte.
func NewIterator(data []byte) (*Iterator, error) {
	padded := scanner.PadBuffer(append([]byte(nil), data...))
	s := scanner.New()
	defer s.Release()

	indexes, err := s.Scan(padded)
	if err != nil {
		return nil, err
	}
	if len(indexes) == 0 {
		return nil, stage2.Empty
	}
	// package ondemand's own cursor has no concept of the trailing padding
	// sentinel package scanner appends for stage2's benefit: its AtEnd and
	// LastIndex treat every entry of the slice as real input, so keeping the
	// sentinel in would throw them off.
	return &Iterator{cursor: ondemand.New(padded, indexes[:len(indexes)-1], 0)}, nil
}

// StartObject requires the current value be an object, at the top level of
// the document. Use LazyObject.EnterObject/EnterArray to descend into
// nested containers found while walking fields or elements.
func (it *Iterator) StartObject() (*LazyObject, bool, error) {
	obj, hasFields, code := ondemand.StartObject(it.cursor, nil)
	if !code.OK() {
		return nil, false, code
	}
	return &LazyObject{o: obj}, hasFields, nil
}

// StartArray is StartObject for a top-level array.
func (it *Iterator) StartArray() (*LazyArray, bool, error) {
	arr, hasElems, code := ondemand.StartArray(it.cursor, nil)
	if !code.OK() {
		return nil, false, code
	}
	return &LazyArray{a: arr}, hasElems, nil
}

// Uint64 consumes the current value as an unsigned 64-bit integer.
func (it *Iterator) Uint64() (uint64, error) { return errOK2(ondemand.GetUint64(it.cursor)) }

// Int64 consumes the current value as a signed 64-bit integer.
func (it *Iterator) Int64() (int64, error) { return errOK2(ondemand.GetInt64(it.cursor)) }

// Double consumes the current value as a float64.
func (it *Iterator) Double() (float64, error) { return errOK2(ondemand.GetDouble(it.cursor)) }

// Bool consumes the current value as true/false.
func (it *Iterator) Bool() (bool, error) { return errOK2(ondemand.GetBool(it.cursor)) }

// IsNull reports whether the current value is the null literal, consuming
// it only if it matches.
func (it *Iterator) IsNull() bool { return ondemand.IsNull(it.cursor) }

// RawJSONString consumes the current value as a string, without unescaping.
func (it *Iterator) RawJSONString() (RawString, error) {
	return errOK2(ondemand.GetRawJSONString(it.cursor))
}

// RootUint64, RootInt64, RootDouble, RootBool, RootIsNull are the get_root_*
// variants: they additionally require the structural stream be exhausted
// after the scalar, since there is no container terminator at the top level
// to stop at otherwise.
func (it *Iterator) RootUint64() (uint64, error) { return errOK2(ondemand.GetRootUint64(it.cursor)) }
func (it *Iterator) RootInt64() (int64, error)   { return errOK2(ondemand.GetRootInt64(it.cursor)) }
func (it *Iterator) RootDouble() (float64, error) {
	return errOK2(ondemand.GetRootDouble(it.cursor))
}
func (it *Iterator) RootBool() (bool, error) { return errOK2(ondemand.GetRootBool(it.cursor)) }
func (it *Iterator) RootIsNull() bool        { return ondemand.RootIsNull(it.cursor) }

// Skip consumes exactly one value of any type, descending into containers
// as needed, without decoding it.
func (it *Iterator) Skip() error {
	if code := ondemand.Skip(it.cursor); !code.OK() {
		return code
	}
	return nil
}

// LazyObject is a pull cursor over one JSON object's fields.
type LazyObject struct{ o ondemand.Object }

func (lo *LazyObject) HasNextField() (bool, error) { return errOK2(lo.o.HasNextField()) }
func (lo *LazyObject) FieldKey() (RawString, error) { return errOK2(lo.o.FieldKey()) }

func (lo *LazyObject) FieldValue() error {
	if code := lo.o.FieldValue(); !code.OK() {
		return code
	}
	return nil
}

// FindFieldRaw scans forward for a field whose raw key bytes equal key,
// skipping unmatched fields. It does not unescape either side of the
// comparison, so a key that spells A with a unicode escape sequence will
// not match the literal "A".
func (lo *LazyObject) FindFieldRaw(key string) (bool, error) { return errOK2(lo.o.FindFieldRaw(key)) }

// EnterObject descends into the current field's value as a nested object,
// leasing the shared cursor from lo so lo's own methods refuse further use
// until the returned LazyObject reaches its closing brace or is Closed.
func (lo *LazyObject) EnterObject(it *Iterator) (*LazyObject, bool, error) {
	lease := ondemand.NewLease(it.cursor)
	obj, hasFields, code := ondemand.StartObject(it.cursor, lease)
	if !code.OK() {
		return nil, false, code
	}
	return &LazyObject{o: obj}, hasFields, nil
}

// EnterArray is EnterObject for a nested array value.
func (lo *LazyObject) EnterArray(it *Iterator) (*LazyArray, bool, error) {
	lease := ondemand.NewLease(it.cursor)
	arr, hasElems, code := ondemand.StartArray(it.cursor, lease)
	if !code.OK() {
		return nil, false, code
	}
	return &LazyArray{a: arr}, hasElems, nil
}

// Close abandons the object, skipping to its terminator if necessary.
func (lo *LazyObject) Close() error {
	if code := lo.o.Close(); !code.OK() {
		return code
	}
	return nil
}

// LazyArray is a pull cursor over one JSON array's elements.
type LazyArray struct{ a ondemand.Array }

func (la *LazyArray) HasNextElement() (bool, error) { return errOK2(la.a.HasNextElement()) }

// EnterObject descends into the current element as a nested object.
func (la *LazyArray) EnterObject(it *Iterator) (*LazyObject, bool, error) {
	lease := ondemand.NewLease(it.cursor)
	obj, hasFields, code := ondemand.StartObject(it.cursor, lease)
	if !code.OK() {
		return nil, false, code
	}
	return &LazyObject{o: obj}, hasFields, nil
}

// EnterArray descends into the current element as a nested array.
func (la *LazyArray) EnterArray(it *Iterator) (*LazyArray, bool, error) {
	lease := ondemand.NewLease(it.cursor)
	arr, hasElems, code := ondemand.StartArray(it.cursor, lease)
	if !code.OK() {
		return nil, false, code
	}
	return &LazyArray{a: arr}, hasElems, nil
}

// Close abandons the array, skipping to its terminator if necessary.
func (la *LazyArray) Close() error {
	if code := la.a.Close(); !code.OK() {
		return code
	}
	return nil
}

func errOK2[T any](v T, code stage2.ErrorCode) (T, error) {
	if !code.OK() {
		var zero T
		return zero, code
	}
	return v, nil
}
