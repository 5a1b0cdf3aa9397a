package report

import (
	"io"
	"strings"
)

// op is one recorded drawing call.
type op struct {
	seq        int
	page       int
	kind       string
	x, y, w, h float64
	text       string
	style      string
}

// recorder is a Surface that records calls instead of drawing. Text is
// wrapped at a fixed character width so line counts are predictable.
type recorder struct {
	pageW, pageH float64
	pages        int
	current      int
	fontSize     float64
	ops          []op
	failOn       string
	err          error
}

func newRecorder(pageW, pageH float64) *recorder {
	return &recorder{pageW: pageW, pageH: pageH, fontSize: 10}
}

func (r *recorder) record(o op) {
	if r.failOn != "" && o.kind == r.failOn {
		panic("recorder: injected failure on " + o.kind)
	}
	o.seq = len(r.ops)
	o.page = r.current
	r.ops = append(r.ops, o)
}

func (r *recorder) SetFont(_ FontStyle, size float64) { r.fontSize = size }
func (r *recorder) SetTextColor(Color)                {}
func (r *recorder) SetFillColor(Color)                {}
func (r *recorder) SetDrawColor(Color)                {}

func (r *recorder) charWidth() float64 { return r.fontSize * ptToMM * 0.5 }

func (r *recorder) SplitText(text string, width float64) []string {
	perLine := max(int(width/r.charWidth()), 1)
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= perLine:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *recorder) Text(x, y float64, s string) { r.record(op{kind: "text", x: x, y: y, text: s}) }

func (r *recorder) Rect(x, y, w, h float64, style string) {
	r.record(op{kind: "rect", x: x, y: y, w: w, h: h, style: style})
}

func (r *recorder) RoundedRect(x, y, w, h, _ float64, style string) {
	r.record(op{kind: "rounded", x: x, y: y, w: w, h: h, style: style})
}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.record(op{kind: "line", x: x1, y: y1, w: x2 - x1, h: y2 - y1})
}

func (r *recorder) AddPage() {
	r.pages++
	r.current = r.pages
}

func (r *recorder) PageNo() int                  { return r.current }
func (r *recorder) PageCount() int               { return r.pages }
func (r *recorder) SetPage(n int)                { r.current = n }
func (r *recorder) PageSize() (float64, float64) { return r.pageW, r.pageH }

func (r *recorder) Output(w io.Writer) error {
	_, err := io.WriteString(w, "recorded")
	return err
}

func (r *recorder) Err() error { return r.err }

func (r *recorder) texts() []string {
	var out []string
	for _, o := range r.ops {
		if o.kind == "text" {
			out = append(out, o.text)
		}
	}
	return out
}

func (r *recorder) allText() string { return strings.Join(r.texts(), "\n") }

func (r *recorder) opsOfKind(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}
