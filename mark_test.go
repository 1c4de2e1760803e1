package tricolor

import "testing"

func TestMarkIgnoresNullReference(t *testing.T) {
	c := newTestCollector(t)
	c.step() // reach MARK so from/to exist
	c.Mark(0)
	// No panic, and nothing was moved: from/to lengths recomputed below.
	fromCount, toCount := 0, 0
	c.from.forEach(func(*Header) { fromCount++ })
	c.to.forEach(func(*Header) { toCount++ })
	if fromCount != 0 || toCount != 0 {
		t.Errorf("Mark(0) must be a pure no-op, from=%d to=%d", fromCount, toCount)
	}
}

func TestMarkOnGrayOrBlackIsNoOp(t *testing.T) {
	c := newTestCollector(t)
	c.step()
	obj := headerOf(c.Allocate(8, nil))

	obj.setColor(colorGray)
	c.Mark(payloadRef(obj))
	if obj.color() != colorGray {
		t.Errorf("Mark on a gray object changed its color to %d", obj.color())
	}

	obj.setColor(c.black())
	c.Mark(payloadRef(obj))
	if obj.color() != c.black() {
		t.Errorf("Mark on a black object changed its color to %d", obj.color())
	}
}

func TestMarkOnWhiteGraysAndMovesToTo(t *testing.T) {
	c := newTestCollector(t)
	c.step()
	obj := headerOf(c.Allocate(8, nil))
	if obj.color() != c.white {
		t.Fatalf("precondition: object should start white, got %d", obj.color())
	}

	c.Mark(payloadRef(obj))

	if obj.color() != colorGray {
		t.Errorf("Mark on white object = %d, want gray", obj.color())
	}
	inTo := false
	c.to.forEach(func(h *Header) {
		if h == obj {
			inTo = true
		}
	})
	if !inTo {
		t.Error("Mark on white object must move it into the to set")
	}
}
