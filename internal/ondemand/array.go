package ondemand

import "github.com/flashjson/flashjson-go/internal/stage2"

// Array is a pull cursor over one JSON array's elements, mirroring Object.
type Array struct {
	iter   *JsonIterator
	lease  *IteratorLease
	closed bool
}

// StartArray requires the next structural be '[' and reports whether the
// array has at least one element.
func StartArray(iter *JsonIterator, lease *IteratorLease) (Array, bool, stage2.ErrorCode) {
	_, b := iter.Advance()
	if b != '[' {
		iter.BackUp()
		return Array{}, false, stage2.IncorrectType
	}
	return StartedArray(iter, lease)
}

// StartedArray is StartArray for a caller that has already consumed the
// opening '[' itself; it does not move the cursor.
func StartedArray(iter *JsonIterator, lease *IteratorLease) (Array, bool, stage2.ErrorCode) {
	a := Array{iter: iter, lease: lease}
	if iter.AtEnd() {
		return a, false, stage2.TapeError
	}
	if iter.PeekChar() == ']' {
		iter.AdvanceChar()
		a.closed = true
		a.releaseLease()
		return a, false, stage2.Success
	}
	return a, true, stage2.Success
}

func (a *Array) releaseLease() {
	if a.lease != nil && a.lease.State() == Held {
		a.lease.release()
	}
}

// HasNextElement consumes one of ',' or ']'. On ']' the array is finished
// and this returns false; on ',' it returns true and the caller should
// read the next element. Returns TAPE_ERROR if a lease handed out for a
// nested value from this array is still Held.
func (a *Array) HasNextElement() (bool, stage2.ErrorCode) {
	if a.closed {
		return false, stage2.Success
	}
	if a.iter.leased && (a.lease == nil || a.lease.State() != Held) {
		return false, stage2.TapeError
	}
	if a.iter.AtEnd() {
		return false, stage2.TapeError
	}
	switch a.iter.AdvanceChar() {
	case ']':
		a.closed = true
		a.releaseLease()
		return false, stage2.Success
	case ',':
		return true, stage2.Success
	default:
		return false, stage2.TapeError
	}
}

// Close abandons the array, skipping to its terminator if the walk hasn't
// reached it yet, and releasing any lease this array was given.
func (a *Array) Close() stage2.ErrorCode {
	if a.closed {
		return stage2.Success
	}
	if _, code := skipContainer(a.iter, 1); code != stage2.Success {
		return code
	}
	a.closed = true
	a.releaseLease()
	return stage2.Success
}
