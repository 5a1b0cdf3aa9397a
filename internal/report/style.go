package report

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in variants.
const (
	VariantInsights = "insights"
	VariantRoadmap  = "roadmap"
)

//go:embed styles.yaml
var builtinStyles []byte

type Fonts struct {
	Title   float64 `yaml:"title"`
	Heading float64 `yaml:"heading"`
	Body    float64 `yaml:"body"`
	Small   float64 `yaml:"small"`
}

type Colors struct {
	Primary Color `yaml:"primary"`
	Text    Color `yaml:"text"`
	Muted   Color `yaml:"muted"`
	Inverse Color `yaml:"inverse"`
	Accent  Color `yaml:"accent"`
	Card    Color `yaml:"card"`
	Zebra   Color `yaml:"zebra"`
	Border  Color `yaml:"border"`
}

// Style is the configuration that distinguishes one report variant from
// another.
type Style struct {
	Variant        string  `yaml:"-"`
	Title          string  `yaml:"title"`
	Generator      string  `yaml:"generator"`
	FilenameSuffix string  `yaml:"filename_suffix"`
	Orientation    string  `yaml:"orientation"`
	Margin         float64 `yaml:"margin"`
	CoverHeight    float64 `yaml:"cover_height"`
	FooterHeight   float64 `yaml:"footer_height"`
	LineSpacing    float64 `yaml:"line_spacing"`
	BlockGap       float64 `yaml:"block_gap"`
	CardPadding    float64 `yaml:"card_padding"`
	CardRadius     float64 `yaml:"card_radius"`
	Fonts          Fonts   `yaml:"fonts"`
	Colors         Colors  `yaml:"colors"`
	Palette        []Color `yaml:"palette"`
}

func (s Style) Landscape() bool {
	return strings.EqualFold(s.Orientation, "landscape")
}

// LineHeight is the advance for one line of text at size points.
func (s Style) LineHeight(size float64) float64 {
	return size * s.LineSpacing * ptToMM
}

// PaletteColor cycles through the palette, falling back to Accent.
func (s Style) PaletteColor(i int) Color {
	if len(s.Palette) == 0 {
		return s.Colors.Accent
	}
	return s.Palette[i%len(s.Palette)]
}

func (s *Style) applyDefaults() {
	if s.Generator == "" {
		s.Generator = "Prioritas"
	}
	if s.FilenameSuffix == "" {
		s.FilenameSuffix = "Report"
	}
	if s.Margin <= 0 {
		s.Margin = 18
	}
	if s.FooterHeight <= 0 {
		s.FooterHeight = 14
	}
	if s.LineSpacing <= 0 {
		s.LineSpacing = 1.25
	}
	if s.BlockGap < 0 {
		s.BlockGap = 0
	}
	if s.Fonts.Body <= 0 {
		s.Fonts.Body = 10
	}
	if s.Fonts.Heading <= 0 {
		s.Fonts.Heading = s.Fonts.Body * 1.4
	}
	if s.Fonts.Title <= 0 {
		s.Fonts.Title = s.Fonts.Body * 2.2
	}
	if s.Fonts.Small <= 0 {
		s.Fonts.Small = s.Fonts.Body * 0.8
	}
}

func (s Style) validate() error {
	switch strings.ToLower(s.Orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("style %s: orientation %q must be portrait or landscape", s.Variant, s.Orientation)
	}
	return nil
}

// ParseStyles decodes a YAML document mapping variant names to styles.
func ParseStyles(data []byte) (map[string]Style, error) {
	var raw map[string]Style
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing styles: %w", err)
	}
	out := make(map[string]Style, len(raw))
	for name, st := range raw {
		st.Variant = name
		st.applyDefaults()
		if err := st.validate(); err != nil {
			return nil, err
		}
		out[name] = st
	}
	return out, nil
}

// LoadStyle returns the named variant from path, or from the built-in
// styles when path is empty.
func LoadStyle(path, variant string) (Style, error) {
	data := builtinStyles
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Style{}, fmt.Errorf("reading style file: %w", err)
		}
		data = b
	}
	styles, err := ParseStyles(data)
	if err != nil {
		return Style{}, err
	}
	st, ok := styles[variant]
	if !ok {
		names := make([]string, 0, len(styles))
		for n := range styles {
			names = append(names, n)
		}
		sort.Strings(names)
		return Style{}, fmt.Errorf("unknown report style %q (available: %s)", variant, strings.Join(names, ", "))
	}
	return st, nil
}

// MustStyle returns a built-in variant and panics if the embedded styles
// are broken.
func MustStyle(variant string) Style {
	st, err := LoadStyle("", variant)
	if err != nil {
		panic(err)
	}
	return st
}
