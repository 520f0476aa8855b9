package ondemand

import "github.com/flashjson/flashjson-go/internal/stage2"

// Object is a pull cursor over one JSON object's fields. It shares its
// caller's JsonIterator rather than copying it; if it was obtained as a
// field value of some enclosing container, that container must have
// leased the cursor to it first (see NewLease).
type Object struct {
	iter   *JsonIterator
	lease  *IteratorLease
	closed bool
}

// NewLease acquires exclusive access to iter's cursor for a container
// that's about to be entered as a child of some other in-progress walk.
// Pass the result to StartObject/StartArray; pass nil when there is no
// enclosing walk to protect (the top-level document value).
func NewLease(iter *JsonIterator) *IteratorLease { return newLease(iter) }

// StartObject requires the next structural be '{' and reports whether the
// object has at least one field.
func StartObject(iter *JsonIterator, lease *IteratorLease) (Object, bool, stage2.ErrorCode) {
	_, b := iter.Advance()
	if b != '{' {
		iter.BackUp()
		return Object{}, false, stage2.IncorrectType
	}
	return StartedObject(iter, lease)
}

// StartedObject is StartObject for a caller that has already consumed the
// opening '{' itself; it does not move the cursor.
func StartedObject(iter *JsonIterator, lease *IteratorLease) (Object, bool, stage2.ErrorCode) {
	o := Object{iter: iter, lease: lease}
	if iter.AtEnd() {
		return o, false, stage2.TapeError
	}
	if iter.PeekChar() == '}' {
		iter.AdvanceChar()
		o.closed = true
		o.releaseLease()
		return o, false, stage2.Success
	}
	return o, true, stage2.Success
}

func (o *Object) releaseLease() {
	if o.lease != nil && o.lease.State() == Held {
		o.lease.release()
	}
}

// HasNextField consumes one of ',' or '}'. On '}' the object is finished
// and this returns false; on ',' it returns true and the caller should
// read the next field's key. Returns TAPE_ERROR if a lease handed out for
// a nested value obtained from this object is still Held, since that
// means a child is mid-walk on the same cursor.
func (o *Object) HasNextField() (bool, stage2.ErrorCode) {
	if o.closed {
		return false, stage2.Success
	}
	if o.iter.leased && (o.lease == nil || o.lease.State() != Held) {
		return false, stage2.TapeError
	}
	if o.iter.AtEnd() {
		return false, stage2.TapeError
	}
	switch o.iter.AdvanceChar() {
	case '}':
		o.closed = true
		o.releaseLease()
		return false, stage2.Success
	case ',':
		return true, stage2.Success
	default:
		return false, stage2.TapeError
	}
}

// FieldKey returns a borrow of the current field's raw key bytes, quotes
// excluded.
func (o *Object) FieldKey() (RawString, stage2.ErrorCode) {
	return GetRawJSONString(o.iter)
}

// FieldValue consumes the ':' between a key and its value.
func (o *Object) FieldValue() stage2.ErrorCode {
	if o.iter.AtEnd() || o.iter.AdvanceChar() != ':' {
		return stage2.TapeError
	}
	return stage2.Success
}

// FindFieldRaw scans forward from the current field for one whose raw key
// bytes equal key, skipping unmatched fields' values. It must be called
// right after StartObject/StartedObject reported at least one field, or
// right after a previous FindFieldRaw/HasNextField positioned the cursor
// at a field key. It does not unescape either side of the comparison, so
// a key written as `"\u0041"` will never match the literal "A".
func (o *Object) FindFieldRaw(key string) (bool, stage2.ErrorCode) {
	if o.closed {
		return false, stage2.Success
	}
	for {
		k, code := o.FieldKey()
		if code != stage2.Success {
			return false, code
		}
		if code := o.FieldValue(); code != stage2.Success {
			return false, code
		}
		if k.Equal(key) {
			return true, stage2.Success
		}
		if code := Skip(o.iter); code != stage2.Success {
			return false, code
		}
		more, code := o.HasNextField()
		if code != stage2.Success {
			return false, code
		}
		if !more {
			return false, stage2.Success
		}
	}
}

// Close abandons the object, skipping to its terminator if the walk hasn't
// reached it yet, and releasing any lease this object was given. Safe to
// call after the object has already closed normally.
func (o *Object) Close() stage2.ErrorCode {
	if o.closed {
		return stage2.Success
	}
	if _, code := skipContainer(o.iter, 1); code != stage2.Success {
		return code
	}
	o.closed = true
	o.releaseLease()
	return stage2.Success
}
