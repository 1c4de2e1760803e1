package tricolor

// Link is the write barrier. The mutator calls it immediately
// after storing child into a field of parent. If that store would let a
// black object directly reference a white one, parent is shaded gray. This
// is the Dijkstra-style insertion barrier: shading the parent (not the
// child) costs a single O(1) check and guarantees parent (including the
// newly installed child) will be rescanned.
//
// Safe to call in any collector state; during MARK it is the mechanism that
// protects a reference installed mid-cycle from being missed.
func (c *Collector) Link(parentRef, childRef uintptr) {
	parent := headerOf(parentRef)
	child := headerOf(childRef)
	if parent.color() == c.black() && child.color() == c.white {
		c.makeGray(parent)
	}
}

// makeGray transitions obj into the gray set: unlink it from
// wherever it currently lives, append it to the tail of to, and color it
// gray. If obj is the object currently under the MARK cursor, the cursor is
// stepped back first so it does not dangle after obj is unlinked. This is
// the case where a visitor invoked from deeper in the scan re-links a
// reference back to the very object it was called from.
func (c *Collector) makeGray(obj *Header) {
	if obj == c.iter {
		c.iter = obj.prevHeader()
	}
	unlink(obj)
	c.to.push(obj)
	obj.setColor(colorGray)
}
