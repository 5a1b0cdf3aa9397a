package report

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
)

// Meta is the project context printed around the report body.
type Meta struct {
	ProjectName string
	ProjectType string
	IdeaCount   int
	Version     int
	GeneratedAt time.Time
	Files       []domain.ProjectFile
}

// Assembler renders a report with one style and one section list.
type Assembler struct {
	style    Style
	sections []Section
}

func NewAssembler(style Style, sections []Section) *Assembler {
	return &Assembler{style: style, sections: sections}
}

// Render draws the cover, every section (or its placeholder), then stamps
// headers and footers on all pages in a final pass. A nil report renders
// as an empty one.
func (a *Assembler) Render(s Surface, report *domain.InsightsReport, meta Meta) error {
	if report == nil {
		report = &domain.InsightsReport{}
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}

	_, pageH := s.PageSize()
	s.AddPage()
	cur := NewCursor(s, a.style.Margin, pageH-a.style.FooterHeight)
	c := newCanvas(s, a.style, cur)

	a.drawCover(c, meta)
	for _, sec := range a.sections {
		c.Heading(sec.Title)
		if sec.Present == nil || !sec.Present(report, meta) {
			c.Placeholder(sec.Placeholder)
			continue
		}
		sec.Render(c, report, meta)
	}

	a.stampPages(s, meta)
	return s.Err()
}

func (a *Assembler) drawCover(c *Canvas, meta Meta) {
	st := a.style
	s := c.s
	pageW, _ := s.PageSize()

	s.SetFillColor(st.Colors.Primary)
	s.Rect(0, 0, pageW, st.CoverHeight, Fill)

	s.SetTextColor(st.Colors.Inverse)
	s.SetFont(Bold, st.Fonts.Title)
	titleY := st.Margin*0.6 + st.LineHeight(st.Fonts.Title)*0.8
	s.Text(c.left, titleY, st.Title)

	s.SetFont(Regular, st.Fonts.Body+2)
	nameY := titleY + st.LineHeight(st.Fonts.Body+2) + 2
	s.Text(c.left, nameY, domain.CoalesceStr(meta.ProjectName, "Untitled project"))

	s.SetFont(Regular, st.Fonts.Small)
	details := fmt.Sprintf("Generated %s  |  %d ideas analyzed", meta.GeneratedAt.Format("January 2, 2006"), meta.IdeaCount)
	if meta.ProjectType != "" {
		details += "  |  " + meta.ProjectType
	}
	if meta.Version > 0 {
		details += fmt.Sprintf("  |  version %d", meta.Version)
	}
	s.Text(c.left, nameY+st.LineHeight(st.Fonts.Small)+1.5, details)

	if below := st.CoverHeight + st.BlockGap*2 - c.cur.Y(); below > 0 {
		c.cur.Advance(below)
	}
}

// FooterText is the line stamped at the bottom of page n of total.
func (a *Assembler) FooterText(n, total int, at time.Time) string {
	return fmt.Sprintf("%s | Page %d of %d | %s", a.style.Generator, n, total, at.Format("2006-01-02"))
}

// stampPages runs after all content exists, so page totals are final.
func (a *Assembler) stampPages(s Surface, meta Meta) {
	st := a.style
	pageW, pageH := s.PageSize()
	total := s.PageCount()
	ruleY := pageH - st.FooterHeight + 3
	textY := ruleY + st.LineHeight(st.Fonts.Small)

	for n := 1; n <= total; n++ {
		s.SetPage(n)
		s.SetDrawColor(st.Colors.Border)
		s.Line(st.Margin, ruleY, pageW-st.Margin, ruleY)
		s.SetFont(Regular, st.Fonts.Small)
		s.SetTextColor(st.Colors.Muted)
		s.Text(st.Margin, textY, a.FooterText(n, total, meta.GeneratedAt))

		if n > 1 && meta.ProjectName != "" {
			s.Text(st.Margin, st.Margin*0.55, meta.ProjectName+" - "+st.Title)
		}
	}
}
