package report

// Cursor tracks the vertical write position on the current page.
type Cursor struct {
	s      Surface
	y      float64
	top    float64
	bottom float64
}

// NewCursor starts at top; content may extend down to bottom.
func NewCursor(s Surface, top, bottom float64) *Cursor {
	return &Cursor{s: s, y: top, top: top, bottom: bottom}
}

func (c *Cursor) Y() float64 { return c.y }

// Ensure guarantees h millimetres of room before a block is drawn, starting
// a new page when the block would cross the bottom margin. It reports
// whether a page break happened. A block taller than a whole page never
// triggers a break from the top of a page; callers split such blocks.
func (c *Cursor) Ensure(h float64) bool {
	if c.y+h <= c.bottom || c.AtTop() {
		return false
	}
	c.Break()
	return true
}

// Break starts a new page unconditionally.
func (c *Cursor) Break() {
	c.s.AddPage()
	c.y = c.top
}

func (c *Cursor) Advance(h float64) { c.y += h }

func (c *Cursor) AtTop() bool { return c.y <= c.top }

// Remaining is the room left on the current page.
func (c *Cursor) Remaining() float64 { return c.bottom - c.y }

// PageHeight is the usable height of an empty page.
func (c *Cursor) PageHeight() float64 { return c.bottom - c.top }
