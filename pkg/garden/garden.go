package garden

import (
	maps "golang.org/x/exp/maps"
	"slices"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

// Fontgarden is the whole multi-source glyph repository.
type Fontgarden struct {
	Sets map[string]*Set
}

// Set is a named, disjoint partition of the glyph namespace: shared
// per-glyph metadata plus the contributing sources' drawings.
type Set struct {
	GlyphData map[string]GlyphRecord
	Sources   map[string]*Source
}

// Source is one contributing font (a style or weight) within a set.
type Source struct {
	Layers map[string]*Layer
}

// Layer is one named drawing plane of a source. Exactly one layer per
// source has Default set.
type Layer struct {
	Glyphs     map[string]*ufo.Glyph
	ColorMarks map[string]ufo.Color
	Default    bool
}

// GlyphRecord is per-glyph metadata, independent of any source's drawing.
type GlyphRecord struct {
	PostScriptName string
	Codepoints     []rune
	Category       Category
	Export         bool
}

// New returns an empty repository.
func New() *Fontgarden {
	return &Fontgarden{Sets: make(map[string]*Set)}
}

func newSet() *Set {
	return &Set{
		GlyphData: make(map[string]GlyphRecord),
		Sources:   make(map[string]*Source),
	}
}

// newSource returns a source with a single empty default layer of the
// given name.
func newSource(defaultLayerName string) *Source {
	return &Source{Layers: map[string]*Layer{
		defaultLayerName: newLayer(true),
	}}
}

func newLayer(isDefault bool) *Layer {
	return &Layer{
		Glyphs:     make(map[string]*ufo.Glyph),
		ColorMarks: make(map[string]ufo.Color),
		Default:    isDefault,
	}
}

// SetNames returns the repository's set names in sorted order.
func (fg *Fontgarden) SetNames() []string {
	keys := maps.Keys(fg.Sets)
	slices.Sort(keys)
	return keys
}

// SourceNames returns every source name appearing in any set, sorted.
func (fg *Fontgarden) SourceNames() []string {
	seen := make(map[string]bool)
	for _, set := range fg.Sets {
		for name := range set.Sources {
			seen[name] = true
		}
	}
	keys := maps.Keys(seen)
	slices.Sort(keys)
	return keys
}

// setOrCreate returns the named set, creating it if absent.
func (fg *Fontgarden) setOrCreate(name string) *Set {
	if set, ok := fg.Sets[name]; ok {
		return set
	}
	set := newSet()
	fg.Sets[name] = set
	return set
}

// Coverage returns every glyph name present in the set, via metadata or
// via any layer of any source. It is recomputed on every call; callers
// must not cache it across mutations.
func (s *Set) Coverage() map[string]bool {
	covered := make(map[string]bool, len(s.GlyphData))
	for name := range s.GlyphData {
		covered[name] = true
	}
	for _, source := range s.Sources {
		for _, layer := range source.Layers {
			for name := range layer.Glyphs {
				covered[name] = true
			}
		}
	}
	return covered
}

// sourceOrCreate returns the named source. A newly created source starts
// with one empty default layer named defaultLayerName.
func (s *Set) sourceOrCreate(name, defaultLayerName string) *Source {
	if source, ok := s.Sources[name]; ok {
		return source
	}
	source := newSource(defaultLayerName)
	s.Sources[name] = source
	return source
}

// DefaultLayer returns the source's default layer and its name.
func (s *Source) DefaultLayer() (string, *Layer) {
	for name, layer := range s.Layers {
		if layer.Default {
			return name, layer
		}
	}
	// Sources are only built through constructors that install a
	// default layer, so this is unreachable on well-formed trees.
	return "", nil
}

// layerOrCreate returns the named non-default layer, creating it empty
// if absent.
func (s *Source) layerOrCreate(name string) *Layer {
	if layer, ok := s.Layers[name]; ok {
		return layer
	}
	layer := newLayer(false)
	s.Layers[name] = layer
	return layer
}
