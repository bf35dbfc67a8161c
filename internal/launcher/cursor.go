package launcher

// Cursor is the selected row of the suggestion list.
type Cursor struct {
	index int
}

func (c *Cursor) Index() int { return c.index }

func (c *Cursor) Reset() { c.index = 0 }

// Move shifts the selection by delta, clamped to [0, count-1]. No-op on an empty list.
func (c *Cursor) Move(delta, count int) {
	if count <= 0 {
		return
	}
	next := c.index + delta
	if next < 0 {
		next = 0
	}
	if next > count-1 {
		next = count - 1
	}
	c.index = next
}

// Set selects index i if it is a valid row.
func (c *Cursor) Set(i, count int) bool {
	if i < 0 || i >= count {
		return false
	}
	c.index = i
	return true
}

// Clamp resets the selection to the first row once the list shrank below it.
func (c *Cursor) Clamp(count int) {
	if c.index < 0 || c.index >= count {
		c.index = 0
	}
}

// Pick returns the selected suggestion, or false when there is none.
func (c *Cursor) Pick(list []Suggestion) (Suggestion, bool) {
	if c.index < 0 || c.index >= len(list) {
		return Suggestion{}, false
	}
	return list[c.index], true
}
