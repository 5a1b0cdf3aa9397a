package report

import (
	"fmt"
	"strings"
)

// Canvas writes guarded blocks in a single column between the page margins.
type Canvas struct {
	s     Surface
	cur   *Cursor
	st    Style
	left  float64
	width float64
}

func newCanvas(s Surface, st Style, cur *Cursor) *Canvas {
	pageW, _ := s.PageSize()
	return &Canvas{s: s, cur: cur, st: st, left: st.Margin, width: pageW - 2*st.Margin}
}

// baseline places text vertically centred in a line box starting at top.
func baseline(top, lineHeight, size float64) float64 {
	return top + (lineHeight+size*ptToMM*0.7)/2
}

func (c *Canvas) bodyLine() float64 { return c.st.LineHeight(c.st.Fonts.Body) }

// Heading draws a section title with a rule under it. It asks for room for
// two body lines as well so a heading never ends a page on its own.
func (c *Canvas) Heading(text string) {
	size := c.st.Fonts.Heading
	lh := c.st.LineHeight(size)
	c.s.SetFont(Bold, size)
	lines := c.s.SplitText(text, c.width)
	h := float64(len(lines))*lh + 2

	c.cur.Ensure(h + 2*c.bodyLine())
	c.s.SetTextColor(c.st.Colors.Primary)
	y := c.cur.Y()
	for i, l := range lines {
		c.s.Text(c.left, baseline(y+float64(i)*lh, lh, size), l)
	}
	c.s.SetDrawColor(c.st.Colors.Accent)
	ruleY := y + float64(len(lines))*lh + 1
	c.s.Line(c.left, ruleY, c.left+c.width, ruleY)
	c.cur.Advance(h + c.st.BlockGap)
}

// Subheading is a bold body-sized label kept with the line after it.
func (c *Canvas) Subheading(text string, color Color) {
	size := c.st.Fonts.Body + 1
	lh := c.st.LineHeight(size)
	c.cur.Ensure(lh + c.bodyLine())
	c.s.SetFont(Bold, size)
	c.s.SetTextColor(color)
	c.s.Text(c.left, baseline(c.cur.Y(), lh, size), text)
	c.cur.Advance(lh + c.st.BlockGap/2)
}

// Paragraph writes wrapped text. A paragraph that fits on a page is kept
// together; a longer one breaks between lines.
func (c *Canvas) Paragraph(text string, style FontStyle, color Color) {
	c.paragraphAt(c.left, c.width, text, style, color)
	c.cur.Advance(c.st.BlockGap)
}

// Placeholder writes the muted italic text shown for a missing section.
func (c *Canvas) Placeholder(text string) {
	c.Paragraph(text, Italic, c.st.Colors.Muted)
}

func (c *Canvas) paragraphAt(x, width float64, text string, style FontStyle, color Color) {
	size := c.st.Fonts.Body
	lh := c.bodyLine()
	c.s.SetFont(style, size)
	lines := c.s.SplitText(text, width)
	if h := float64(len(lines)) * lh; h <= c.cur.PageHeight() {
		c.cur.Ensure(h)
	}
	c.s.SetTextColor(color)
	for _, l := range lines {
		if c.cur.Ensure(lh) {
			c.s.SetFont(style, size)
			c.s.SetTextColor(color)
		}
		c.s.Text(x, baseline(c.cur.Y(), lh, size), l)
		c.cur.Advance(lh)
	}
}

// Bullets writes one guarded item per entry with a hanging indent. Numbered
// lists use "1." style markers.
func (c *Canvas) Bullets(items []string, numbered bool) {
	const indent = 6
	for i, item := range items {
		marker := "•"
		if numbered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		size := c.st.Fonts.Body
		lh := c.bodyLine()
		c.s.SetFont(Regular, size)
		lines := c.s.SplitText(item, c.width-indent)
		c.cur.Ensure(min(float64(len(lines))*lh, c.cur.PageHeight()))

		c.s.SetFont(Bold, size)
		c.s.SetTextColor(c.st.Colors.Accent)
		c.s.Text(c.left, baseline(c.cur.Y(), lh, size), marker)
		c.paragraphAt(c.left+indent, c.width-indent, item, Regular, c.st.Colors.Text)
		c.cur.Advance(c.st.BlockGap / 2)
	}
	c.cur.Advance(c.st.BlockGap / 2)
}

type cardLine struct {
	text  string
	style FontStyle
	color Color
}

// Card draws a rounded background with an accent bar, an optional index
// badge, a bold title and a body. A card taller than the room left is moved
// to a new page; one taller than a whole page is cut between lines into
// fragments that each carry their own background.
func (c *Canvas) Card(index int, title, body string, accent Color) {
	pad := c.st.CardPadding
	size := c.st.Fonts.Body
	lh := c.bodyLine()
	badgeW := 0.0
	if index > 0 {
		badgeW = 8
	}
	textX := c.left + pad + 2 + badgeW
	textW := c.width - (textX - c.left) - pad

	var lines []cardLine
	if title != "" {
		c.s.SetFont(Bold, size)
		for _, l := range c.s.SplitText(title, textW) {
			lines = append(lines, cardLine{l, Bold, c.st.Colors.Text})
		}
	}
	if body != "" {
		c.s.SetFont(Regular, size)
		for _, l := range c.s.SplitText(body, textW) {
			lines = append(lines, cardLine{l, Regular, c.st.Colors.Text})
		}
	}
	if len(lines) == 0 {
		return
	}

	h := 2*pad + float64(len(lines))*lh
	if h <= c.cur.PageHeight() {
		c.cur.Ensure(h)
		c.drawCard(index, lines, textX, accent)
		return
	}

	first := true
	for len(lines) > 0 {
		n := int((c.cur.Remaining() - 2*pad) / lh)
		if n < 1 {
			if !c.cur.AtTop() {
				c.cur.Break()
				continue
			}
			n = 1
		}
		n = min(n, len(lines))
		badge := 0
		if first {
			badge = index
		}
		c.drawCard(badge, lines[:n], textX, accent)
		lines = lines[n:]
		first = false
	}
}

func (c *Canvas) drawCard(index int, lines []cardLine, textX float64, accent Color) {
	pad := c.st.CardPadding
	size := c.st.Fonts.Body
	lh := c.bodyLine()
	y := c.cur.Y()
	h := 2*pad + float64(len(lines))*lh

	c.s.SetFillColor(c.st.Colors.Card)
	c.s.RoundedRect(c.left, y, c.width, h, c.st.CardRadius, Fill)
	c.s.SetFillColor(accent)
	c.s.Rect(c.left, y, 1.5, h, Fill)

	if index > 0 {
		c.s.RoundedRect(c.left+pad+1, y+pad, 6, lh, 1, Fill)
		c.s.SetFont(Bold, c.st.Fonts.Small)
		c.s.SetTextColor(c.st.Colors.Inverse)
		c.s.Text(c.left+pad+2, baseline(y+pad, lh, c.st.Fonts.Small), fmt.Sprint(index))
	}

	for i, l := range lines {
		c.s.SetFont(l.style, size)
		c.s.SetTextColor(l.color)
		c.s.Text(textX, baseline(y+pad+float64(i)*lh, lh, size), l.text)
	}
	c.cur.Advance(h + c.st.BlockGap)
}

// Column describes a table column; widths are proportional to Weight.
type Column struct {
	Header string
	Weight float64
}

// Table draws a header row in the accent color and body rows with
// alternating backgrounds. Each row is a guarded write, and the header is
// repeated at the top of every continuation page.
func (c *Canvas) Table(cols []Column, rows [][]string) {
	if len(cols) == 0 {
		return
	}
	const cellPad = 2
	size := c.st.Fonts.Body
	lh := c.bodyLine()

	total := 0.0
	for _, col := range cols {
		total += max(col.Weight, 0.1)
	}
	widths := make([]float64, len(cols))
	for i, col := range cols {
		widths[i] = c.width * max(col.Weight, 0.1) / total
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Header
	}
	c.s.SetFont(Bold, size)
	headerCells := c.wrapCells(headers, widths, cellPad, 0)
	headerH := rowHeight(headerCells, lh, cellPad)

	// Rows taller than a page are truncated to what fits under the header.
	maxLines := int((c.cur.PageHeight() - headerH - 2*cellPad) / lh)

	drawHeader := func() {
		y := c.cur.Y()
		c.s.SetFillColor(c.st.Colors.Accent)
		c.s.Rect(c.left, y, c.width, headerH, Fill)
		c.drawCells(headerCells, widths, y, cellPad, Bold, c.st.Colors.Inverse)
		c.cur.Advance(headerH)
	}

	c.s.SetFont(Regular, size)
	bodyCells := make([][][]string, len(rows))
	for r, row := range rows {
		bodyCells[r] = c.wrapCells(row, widths, cellPad, maxLines)
	}

	first := headerH
	if len(bodyCells) > 0 {
		first += rowHeight(bodyCells[0], lh, cellPad)
	}
	c.cur.Ensure(first)
	drawHeader()

	for r, cells := range bodyCells {
		h := rowHeight(cells, lh, cellPad)
		if c.cur.Ensure(h) {
			drawHeader()
		}
		y := c.cur.Y()
		fill := c.st.Colors.Inverse
		if r%2 == 1 {
			fill = c.st.Colors.Zebra
		}
		c.s.SetFillColor(fill)
		c.s.Rect(c.left, y, c.width, h, Fill)
		c.s.SetDrawColor(c.st.Colors.Border)
		c.s.Line(c.left, y+h, c.left+c.width, y+h)
		c.drawCells(cells, widths, y, cellPad, Regular, c.st.Colors.Text)
		c.cur.Advance(h)
	}
	c.cur.Advance(c.st.BlockGap)
}

func (c *Canvas) wrapCells(values []string, widths []float64, pad float64, maxLines int) [][]string {
	cells := make([][]string, len(widths))
	for i := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		lines := c.s.SplitText(v, widths[i]-2*pad)
		if maxLines > 0 && len(lines) > maxLines {
			lines = lines[:maxLines]
			lines[maxLines-1] = strings.TrimRight(lines[maxLines-1], " ") + "..."
		}
		cells[i] = lines
	}
	return cells
}

func (c *Canvas) drawCells(cells [][]string, widths []float64, y, pad float64, style FontStyle, color Color) {
	size := c.st.Fonts.Body
	lh := c.bodyLine()
	c.s.SetFont(style, size)
	c.s.SetTextColor(color)
	x := c.left
	for i, lines := range cells {
		for j, l := range lines {
			c.s.Text(x+pad, baseline(y+pad+float64(j)*lh, lh, size), l)
		}
		x += widths[i]
	}
}

func rowHeight(cells [][]string, lh, pad float64) float64 {
	n := 1
	for _, lines := range cells {
		n = max(n, len(lines))
	}
	return float64(n)*lh + 2*pad
}
