package tricolor

// ObjectInfo describes one live object for introspection tooling (the
// gcinspect CLI's listing command and the property tests). It sits
// alongside the core public interface. The core never needs to describe
// its own objects to anything but itself, but exposing it costs nothing
// beyond a read-only walk of the sets tests already need to do.
type ObjectInfo struct {
	Addr    uintptr
	Color   string
	IsWhite bool
	IsGray  bool
	IsBlack bool
}

func (c *Collector) describe(h *Header) ObjectInfo {
	col := h.color()
	info := ObjectInfo{Addr: payloadRef(h)}
	switch {
	case col == colorGray:
		info.Color = "gray"
		info.IsGray = true
	case col == c.white:
		info.Color = "white"
		info.IsWhite = true
	default:
		info.Color = "black"
		info.IsBlack = true
	}
	return info
}

// FromObjects lists the current contents of the from space.
func (c *Collector) FromObjects() []ObjectInfo {
	if c.from == nil {
		return nil
	}
	var out []ObjectInfo
	c.from.forEach(func(h *Header) {
		out = append(out, c.describe(h))
	})
	return out
}

// ToObjects lists the current contents of the to space.
func (c *Collector) ToObjects() []ObjectInfo {
	if c.to == nil {
		return nil
	}
	var out []ObjectInfo
	c.to.forEach(func(h *Header) {
		out = append(out, c.describe(h))
	})
	return out
}
