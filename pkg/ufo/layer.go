package ufo

import (
	maps "golang.org/x/exp/maps"
	"slices"
)

// Layer is a named glyph container within a [Font].
type Layer struct {
	name   string
	glyphs map[string]*Glyph
}

func newLayer(name string) *Layer {
	return &Layer{name: name, glyphs: make(map[string]*Glyph)}
}

// Name returns the layer's logical name.
func (l *Layer) Name() string { return l.name }

// Len returns the number of glyphs in the layer.
func (l *Layer) Len() int { return len(l.glyphs) }

// Glyph returns the glyph with the given name, if present.
func (l *Layer) Glyph(name string) (*Glyph, bool) {
	g, ok := l.glyphs[name]
	return g, ok
}

// InsertGlyph adds g to the layer, replacing any glyph of the same name.
func (l *Layer) InsertGlyph(g *Glyph) {
	l.glyphs[g.Name] = g
}

// GlyphNames returns the layer's glyph names in sorted order.
func (l *Layer) GlyphNames() []string {
	keys := maps.Keys(l.glyphs)
	slices.Sort(keys)
	return keys
}

// Glyphs returns the layer's glyphs sorted by name.
func (l *Layer) Glyphs() []*Glyph {
	names := l.GlyphNames()
	out := make([]*Glyph, len(names))
	for i, n := range names {
		out[i] = l.glyphs[n]
	}
	return out
}
