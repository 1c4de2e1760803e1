package tricolor

// objSet is a circular doubly linked list of Headers, headed by a sentinel
// that is itself a degenerate Header. All non-sentinel headers reachable
// from a set belong to exactly one set at any moment.
//
// This is intrusive by necessity: makeGray must reposition a walk cursor
// mid-traversal (see barrier.go) which a general-purpose sequence container
// cannot do in O(1) without invalidating the walk.
type objSet struct {
	sentinel *Header
}

// clear resets the set to empty by pointing the sentinel at itself.
func (s *objSet) clear() {
	s.sentinel.setNext(s.sentinel)
	s.sentinel.setPrev(s.sentinel)
}

// push inserts obj at the tail of the set, immediately before the sentinel.
func (s *objSet) push(obj *Header) {
	tail := s.sentinel.prevHeader()
	obj.setPrev(tail)
	obj.setNext(s.sentinel)
	tail.setNext(obj)
	s.sentinel.setPrev(obj)
}

// unlink splices obj out of whatever set it currently belongs to. obj's own
// next/prev links are left stale; the caller is expected to relink it
// immediately (into another set, via push).
func unlink(obj *Header) {
	prev := obj.prevHeader()
	next := obj.next()
	prev.setNext(next)
	next.setPrev(prev)
}

// empty reports whether the set holds no non-sentinel headers.
func (s *objSet) empty() bool {
	return s.sentinel.next() == s.sentinel
}

// forEach walks the set from head to tail, calling fn on each non-sentinel
// header. fn must not mutate set membership of obj or its neighbors.
func (s *objSet) forEach(fn func(obj *Header)) {
	for obj := s.sentinel.next(); obj != s.sentinel; obj = obj.next() {
		fn(obj)
	}
}
