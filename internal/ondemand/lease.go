package ondemand

// LeaseState is the state of an IteratorLease.
type LeaseState uint8

const (
	// Held is the state from lease creation until release: the leaseholder
	// has exclusive use of the underlying JsonIterator's cursor.
	Held LeaseState = iota
	// Released is the terminal state; the lease must not be used again.
	Released
)

// IteratorLease grants a child (a nested Object or Array obtained from a
// value inside a parent container) temporary exclusive ownership of the
// shared JsonIterator cursor. Only one lease on a given iterator may be
// Held at a time; acquiring a second one is a bug in the caller and panics,
// the same way the parent misusing its own cursor while a child lease is
// outstanding would corrupt both observers.
//
// There is no copy constructor by design: a lease is obtained once via
// newLease and consumed once via release. Go has no move semantics to
// enforce this statically, so State is exposed for callers that want to
// assert they haven't double-released.
type IteratorLease struct {
	iter  *JsonIterator
	state LeaseState
}

// newLease acquires exclusive access to iter's cursor. Panics if iter is
// already leased, since that means a parent container iterator and one of
// its children are both trying to walk the same cursor at once.
func newLease(iter *JsonIterator) *IteratorLease {
	if iter.leased {
		panic("ondemand: iterator already leased to another child")
	}
	iter.leased = true
	return &IteratorLease{iter: iter, state: Held}
}

// State reports whether the lease is still held.
func (l *IteratorLease) State() LeaseState { return l.state }

// release returns the cursor to whatever held it before this lease existed.
// Callers must have already positioned the cursor past the end of whatever
// value this lease was covering (Object.Close/Array.Close do that for a
// container that wasn't fully walked out); release itself only clears the exclusivity
// flag and marks the lease consumed.
func (l *IteratorLease) release() {
	if l.state == Released {
		panic("ondemand: lease released twice")
	}
	l.iter.leased = false
	l.state = Released
}
