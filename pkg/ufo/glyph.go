package ufo

import (
	"encoding/xml"
	"fmt"
	"os"
	"slices"
	"strconv"
	"unicode/utf8"
)

// Glyph is one glyph drawing: advance, code points, contours, component
// references, and the glyph-level lib dictionary.
type Glyph struct {
	Name       string
	Width      float64
	Height     float64
	Codepoints []rune
	Contours   []Contour
	Components []Component
	Lib        Lib
}

// Contour is a closed or open sequence of outline points.
type Contour struct {
	Points []Point
}

// Point is one outline point. An empty Type means off-curve.
type Point struct {
	X, Y   float64
	Type   string
	Smooth bool
	Name   string
}

// Component references another glyph's outline by name, with an affine
// transformation. The zero transformation is the identity after
// [NewComponent]; a hand-built Component must set XScale/YScale itself.
type Component struct {
	Base    string
	XScale  float64
	XYScale float64
	YXScale float64
	YScale  float64
	XOffset float64
	YOffset float64
}

// NewComponent returns an identity-transform component referencing base.
func NewComponent(base string) Component {
	return Component{Base: base, XScale: 1, YScale: 1}
}

// NewGlyph returns an empty glyph with the given name.
func NewGlyph(name string) *Glyph {
	return &Glyph{Name: name, Lib: Lib{}}
}

// Clone returns a deep copy of the glyph. The lib dictionary is copied
// one level deep, which covers every key the repository touches.
func (g *Glyph) Clone() *Glyph {
	out := &Glyph{
		Name:       g.Name,
		Width:      g.Width,
		Height:     g.Height,
		Codepoints: slices.Clone(g.Codepoints),
		Components: slices.Clone(g.Components),
		Lib:        g.Lib.Clone(),
	}
	out.Contours = make([]Contour, len(g.Contours))
	for i, c := range g.Contours {
		out.Contours[i] = Contour{Points: slices.Clone(c.Points)}
	}
	return out
}

// ComponentBases returns the base glyph name of every component,
// in order, including duplicates.
func (g *Glyph) ComponentBases() []string {
	if len(g.Components) == 0 {
		return nil
	}
	bases := make([]string, len(g.Components))
	for i, c := range g.Components {
		bases[i] = c.Base
	}
	return bases
}

// LoadGlyph reads a GLIF file.
func LoadGlyph(path string) (*Glyph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := parseGlyph(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Save writes the glyph as a GLIF format-2 file.
func (g *Glyph) Save(path string) error {
	data, err := g.marshalGlyph()
	if err != nil {
		return fmt.Errorf("glyph %q: %w", g.Name, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// The wire representation keeps every attribute as a string so that
// absent attributes are distinguishable from zero values.
type glifGlyph struct {
	XMLName  xml.Name      `xml:"glyph"`
	Name     string        `xml:"name,attr"`
	Format   string        `xml:"format,attr"`
	Advance  *glifAdvance  `xml:"advance"`
	Unicodes []glifUnicode `xml:"unicode"`
	Outline  *glifOutline  `xml:"outline"`
	Lib      *libDict      `xml:"lib"`
}

type glifAdvance struct {
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
}

type glifUnicode struct {
	Hex string `xml:"hex,attr"`
}

type glifOutline struct {
	Contours   []glifContour   `xml:"contour"`
	Components []glifComponent `xml:"component"`
}

type glifContour struct {
	Points []glifPoint `xml:"point"`
}

type glifPoint struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Type   string `xml:"type,attr,omitempty"`
	Smooth string `xml:"smooth,attr,omitempty"`
	Name   string `xml:"name,attr,omitempty"`
}

type glifComponent struct {
	Base    string `xml:"base,attr"`
	XScale  string `xml:"xScale,attr,omitempty"`
	XYScale string `xml:"xyScale,attr,omitempty"`
	YXScale string `xml:"yxScale,attr,omitempty"`
	YScale  string `xml:"yScale,attr,omitempty"`
	XOffset string `xml:"xOffset,attr,omitempty"`
	YOffset string `xml:"yOffset,attr,omitempty"`
}

func parseGlyph(data []byte) (*Glyph, error) {
	var doc glifGlyph
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := ValidateName(doc.Name); err != nil {
		return nil, fmt.Errorf("invalid glyph name: %w", err)
	}

	g := NewGlyph(doc.Name)
	if doc.Advance != nil {
		var err error
		if g.Width, err = parseOptionalNumber(doc.Advance.Width); err != nil {
			return nil, fmt.Errorf("advance width: %w", err)
		}
		if g.Height, err = parseOptionalNumber(doc.Advance.Height); err != nil {
			return nil, fmt.Errorf("advance height: %w", err)
		}
	}
	for _, u := range doc.Unicodes {
		r, err := parseHexCodepoint(u.Hex)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(g.Codepoints, r) {
			g.Codepoints = append(g.Codepoints, r)
		}
	}
	if doc.Outline != nil {
		for _, c := range doc.Outline.Contours {
			contour := Contour{Points: make([]Point, 0, len(c.Points))}
			for _, p := range c.Points {
				point, err := parsePoint(p)
				if err != nil {
					return nil, err
				}
				contour.Points = append(contour.Points, point)
			}
			g.Contours = append(g.Contours, contour)
		}
		for _, c := range doc.Outline.Components {
			component, err := parseComponent(c)
			if err != nil {
				return nil, err
			}
			g.Components = append(g.Components, component)
		}
	}
	if doc.Lib != nil {
		g.Lib = doc.Lib.Lib
	}
	return g, nil
}

func (g *Glyph) marshalGlyph() ([]byte, error) {
	doc := glifGlyph{Name: g.Name, Format: "2"}
	if g.Width != 0 || g.Height != 0 {
		doc.Advance = &glifAdvance{
			Width:  formatOptionalNumber(g.Width),
			Height: formatOptionalNumber(g.Height),
		}
	}
	for _, r := range g.Codepoints {
		doc.Unicodes = append(doc.Unicodes, glifUnicode{Hex: fmt.Sprintf("%04X", r)})
	}
	if len(g.Contours) > 0 || len(g.Components) > 0 {
		doc.Outline = &glifOutline{}
		for _, c := range g.Contours {
			contour := glifContour{Points: make([]glifPoint, 0, len(c.Points))}
			for _, p := range c.Points {
				contour.Points = append(contour.Points, formatPoint(p))
			}
			doc.Outline.Contours = append(doc.Outline.Contours, contour)
		}
		for _, c := range g.Components {
			doc.Outline.Components = append(doc.Outline.Components, formatComponent(c))
		}
	}
	if len(g.Lib) > 0 {
		doc.Lib = &libDict{Lib: g.Lib}
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func parsePoint(p glifPoint) (Point, error) {
	x, err := strconv.ParseFloat(p.X, 64)
	if err != nil {
		return Point{}, fmt.Errorf("point x %q: %w", p.X, err)
	}
	y, err := strconv.ParseFloat(p.Y, 64)
	if err != nil {
		return Point{}, fmt.Errorf("point y %q: %w", p.Y, err)
	}
	switch p.Type {
	case "", "move", "line", "curve", "qcurve", "offcurve":
	default:
		return Point{}, fmt.Errorf("unknown point type %q", p.Type)
	}
	typ := p.Type
	if typ == "offcurve" {
		typ = ""
	}
	return Point{X: x, Y: y, Type: typ, Smooth: p.Smooth == "yes", Name: p.Name}, nil
}

func formatPoint(p Point) glifPoint {
	out := glifPoint{
		X:    formatNumber(p.X),
		Y:    formatNumber(p.Y),
		Type: p.Type,
		Name: p.Name,
	}
	if p.Smooth {
		out.Smooth = "yes"
	}
	return out
}

func parseComponent(c glifComponent) (Component, error) {
	if err := ValidateName(c.Base); err != nil {
		return Component{}, fmt.Errorf("component base: %w", err)
	}
	out := NewComponent(c.Base)
	fields := []struct {
		raw string
		dst *float64
	}{
		{c.XScale, &out.XScale},
		{c.XYScale, &out.XYScale},
		{c.YXScale, &out.YXScale},
		{c.YScale, &out.YScale},
		{c.XOffset, &out.XOffset},
		{c.YOffset, &out.YOffset},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return Component{}, fmt.Errorf("component %q: %w", c.Base, err)
		}
		*f.dst = v
	}
	return out, nil
}

func formatComponent(c Component) glifComponent {
	out := glifComponent{Base: c.Base}
	if c.XScale != 1 {
		out.XScale = formatNumber(c.XScale)
	}
	if c.XYScale != 0 {
		out.XYScale = formatNumber(c.XYScale)
	}
	if c.YXScale != 0 {
		out.YXScale = formatNumber(c.YXScale)
	}
	if c.YScale != 1 {
		out.YScale = formatNumber(c.YScale)
	}
	if c.XOffset != 0 {
		out.XOffset = formatNumber(c.XOffset)
	}
	if c.YOffset != 0 {
		out.YOffset = formatNumber(c.YOffset)
	}
	return out
}

func parseHexCodepoint(s string) (rune, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("code point %q: %w", s, err)
	}
	if v > utf8.MaxRune {
		return 0, fmt.Errorf("code point %q: beyond U+10FFFF", s)
	}
	return rune(v), nil
}

func parseOptionalNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatOptionalNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return formatNumber(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
