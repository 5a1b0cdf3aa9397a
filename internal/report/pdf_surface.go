package report

import (
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const pdfFontFamily = "Helvetica"

// PDFSurface draws on an A4 fpdf document. Automatic page breaks are off;
// the Cursor decides when a page ends.
//
// The core fonts are cp1252. Callers pass UTF-8; text is encoded on the way
// in and SplitText hands lines back as UTF-8 so Text can treat every string
// the same.
type PDFSurface struct {
	pdf *fpdf.Fpdf
	enc *encoding.Encoder
	dec *encoding.Decoder
}

func NewPDFSurface(style Style) *PDFSurface {
	orientation := "P"
	if style.Landscape() {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	pdf.SetCreator(style.Generator, true)
	pdf.SetTitle(style.Title, true)
	pdf.SetFont(pdfFontFamily, "", style.Fonts.Body)
	return &PDFSurface{
		pdf: pdf,
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
		dec: charmap.Windows1252.NewDecoder(),
	}
}

func (p *PDFSurface) toCP1252(s string) string {
	out, err := p.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

func (p *PDFSurface) fromCP1252(s string) string {
	out, err := p.dec.String(s)
	if err != nil {
		return s
	}
	return out
}

func (p *PDFSurface) SetFont(style FontStyle, size float64) {
	p.pdf.SetFont(pdfFontFamily, string(style), size)
}

func (p *PDFSurface) SetTextColor(c Color) { p.pdf.SetTextColor(c.R, c.G, c.B) }
func (p *PDFSurface) SetFillColor(c Color) { p.pdf.SetFillColor(c.R, c.G, c.B) }
func (p *PDFSurface) SetDrawColor(c Color) { p.pdf.SetDrawColor(c.R, c.G, c.B) }

func (p *PDFSurface) SplitText(text string, width float64) []string {
	lines := p.pdf.SplitText(p.toCP1252(text), width)
	if len(lines) == 0 {
		return []string{""}
	}
	for i, l := range lines {
		lines[i] = p.fromCP1252(l)
	}
	return lines
}

func (p *PDFSurface) Text(x, y float64, s string) { p.pdf.Text(x, y, p.toCP1252(s)) }

func (p *PDFSurface) Rect(x, y, w, h float64, style string) { p.pdf.Rect(x, y, w, h, style) }

func (p *PDFSurface) RoundedRect(x, y, w, h, r float64, style string) {
	p.pdf.RoundedRect(x, y, w, h, r, "1234", style)
}

func (p *PDFSurface) Line(x1, y1, x2, y2 float64) { p.pdf.Line(x1, y1, x2, y2) }
func (p *PDFSurface) AddPage()                    { p.pdf.AddPage() }
func (p *PDFSurface) PageNo() int                 { return p.pdf.PageNo() }
func (p *PDFSurface) PageCount() int              { return p.pdf.PageCount() }
func (p *PDFSurface) SetPage(n int)               { p.pdf.SetPage(n) }

func (p *PDFSurface) PageSize() (float64, float64) { return p.pdf.GetPageSize() }

func (p *PDFSurface) Output(w io.Writer) error { return p.pdf.Output(w) }
func (p *PDFSurface) Err() error               { return p.pdf.Error() }
