// Package report lays out insights reports on a paginated drawing surface.
//
// Every block goes through the same guarded write: compute its height, ask
// the Cursor for room (starting a new page if needed), draw the background,
// then the text. Report variants differ only in Style and in the list of
// Section descriptors they render.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ptToMM converts font points to the millimetre units surfaces work in.
const ptToMM = 25.4 / 72

type FontStyle string

const (
	Regular FontStyle = ""
	Bold    FontStyle = "B"
	Italic  FontStyle = "I"
)

// Rect and RoundedRect styles.
const (
	Fill       = "F"
	Stroke     = "D"
	FillStroke = "FD"
)

// Surface is the drawing primitive set the assembler needs. Coordinates are
// millimetres from the top-left corner of the current page.
type Surface interface {
	SetFont(style FontStyle, size float64)
	SetTextColor(c Color)
	SetFillColor(c Color)
	SetDrawColor(c Color)
	// SplitText word-wraps text into lines no wider than width using the
	// current font.
	SplitText(text string, width float64) []string
	Text(x, y float64, s string)
	Rect(x, y, w, h float64, style string)
	RoundedRect(x, y, w, h, r float64, style string)
	Line(x1, y1, x2, y2 float64)
	AddPage()
	PageNo() int
	PageCount() int
	// SetPage moves drawing back to an existing page, 1-based.
	SetPage(n int)
	PageSize() (w, h float64)
	Output(w io.Writer) error
	// Err reports the first error the surface recorded, if any.
	Err() error
}

type Color struct {
	R, G, B int
}

// ParseColor reads "#rrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
