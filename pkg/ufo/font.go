package ufo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"howett.net/plist"
)

// DefaultLayerName is the default layer's name in a freshly created font.
const DefaultLayerName = "public.default"

// defaultLayerDir is the on-disk directory of the default layer.
const defaultLayerDir = "glyphs"

var (
	// ErrNotAFont is returned by [LoadFont] when the path is not a
	// directory or has no metainfo.plist.
	ErrNotAFont = errors.New("not a UFO font directory")

	// ErrNoDefaultLayer is returned by [LoadFont] when the package has
	// no "glyphs" directory.
	ErrNoDefaultLayer = errors.New("font has no default layer")

	// ErrDuplicateLayer is returned when a layer name is already taken.
	ErrDuplicateLayer = errors.New("layer name already in use")
)

// FontInfo carries the naming attributes the repository cares about.
type FontInfo struct {
	FamilyName string `plist:"familyName,omitempty"`
	StyleName  string `plist:"styleName,omitempty"`
}

// Font is one font source document: font info, the font-level lib, and
// an ordered list of glyph layers of which exactly one is the default.
type Font struct {
	Info FontInfo
	Lib  Lib

	layers       []*Layer
	defaultLayer *Layer
}

// NewFont returns an empty font with a default layer named
// [DefaultLayerName].
func NewFont() *Font {
	l := newLayer(DefaultLayerName)
	return &Font{Lib: Lib{}, layers: []*Layer{l}, defaultLayer: l}
}

// DefaultLayer returns the font's default layer.
func (f *Font) DefaultLayer() *Layer { return f.defaultLayer }

// Layers returns the font's layers in order, default layer first.
func (f *Font) Layers() []*Layer { return slices.Clone(f.layers) }

// Layer returns the layer with the given name, if present.
func (f *Font) Layer(name string) (*Layer, bool) {
	for _, l := range f.layers {
		if l.name == name {
			return l, true
		}
	}
	return nil, false
}

// NewLayer adds an empty non-default layer.
func (f *Font) NewLayer(name string) (*Layer, error) {
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("layer name: %w", err)
	}
	if _, exists := f.Layer(name); exists {
		return nil, fmt.Errorf("layer %q: %w", name, ErrDuplicateLayer)
	}
	l := newLayer(name)
	f.layers = append(f.layers, l)
	return l, nil
}

// RenameDefaultLayer gives the default layer a new logical name.
func (f *Font) RenameDefaultLayer(name string) error {
	if err := ValidateName(name); err != nil {
		return fmt.Errorf("layer name: %w", err)
	}
	if other, exists := f.Layer(name); exists && other != f.defaultLayer {
		return fmt.Errorf("layer %q: %w", name, ErrDuplicateLayer)
	}
	f.defaultLayer.name = name
	return nil
}

// Glyph returns the named glyph from the default layer.
func (f *Font) Glyph(name string) (*Glyph, bool) {
	return f.defaultLayer.Glyph(name)
}

// GlyphNames returns the union of glyph names across all layers, sorted.
func (f *Font) GlyphNames() []string {
	seen := make(map[string]bool)
	for _, l := range f.layers {
		for name := range l.glyphs {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type metaInfo struct {
	Creator       string `plist:"creator"`
	FormatVersion int    `plist:"formatVersion"`
}

// LoadFont reads a UFO package from disk.
func LoadFont(path string) (*Font, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotAFont)
	}
	var meta metaInfo
	if err := ReadPlist(filepath.Join(path, "metainfo.plist"), &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNotAFont)
	}

	f := &Font{Lib: Lib{}}
	if err := readOptionalPlist(filepath.Join(path, "fontinfo.plist"), &f.Info); err != nil {
		return nil, fmt.Errorf("read fontinfo.plist: %w", err)
	}
	var lib map[string]any
	if err := readOptionalPlist(filepath.Join(path, "lib.plist"), &lib); err != nil {
		return nil, fmt.Errorf("read lib.plist: %w", err)
	}
	if lib != nil {
		f.Lib = Lib(lib)
	}

	var contents [][]string
	if err := ReadPlist(filepath.Join(path, "layercontents.plist"), &contents); err != nil {
		return nil, fmt.Errorf("read layercontents.plist: %w", err)
	}
	for _, entry := range contents {
		if len(entry) != 2 {
			return nil, fmt.Errorf("layercontents.plist: malformed entry %v", entry)
		}
		name, dir := entry[0], entry[1]
		if err := ValidateName(name); err != nil {
			return nil, fmt.Errorf("layer name: %w", err)
		}
		l, err := loadLayer(filepath.Join(path, dir), name)
		if err != nil {
			return nil, fmt.Errorf("load layer %q: %w", name, err)
		}
		f.layers = append(f.layers, l)
		if dir == defaultLayerDir {
			f.defaultLayer = l
		}
	}
	if f.defaultLayer == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoDefaultLayer)
	}
	// layercontents.plist may list the default layer anywhere; [Layers]
	// promises it first.
	if f.layers[0] != f.defaultLayer {
		others := make([]*Layer, 0, len(f.layers)-1)
		for _, l := range f.layers {
			if l != f.defaultLayer {
				others = append(others, l)
			}
		}
		f.layers = append([]*Layer{f.defaultLayer}, others...)
	}
	return f, nil
}

func loadLayer(dir, name string) (*Layer, error) {
	l := newLayer(name)
	var contents map[string]string
	if err := ReadPlist(filepath.Join(dir, "contents.plist"), &contents); err != nil {
		return nil, fmt.Errorf("read contents.plist: %w", err)
	}
	for glyphName, fileName := range contents {
		g, err := LoadGlyph(filepath.Join(dir, fileName))
		if err != nil {
			return nil, fmt.Errorf("load glyph %q: %w", glyphName, err)
		}
		l.glyphs[g.Name] = g
	}
	return l, nil
}

// Save writes the font as a UFO v3 package, replacing path entirely.
func (f *Font) Save(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("clear target: %w", err)
		}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create font directory: %w", err)
	}

	meta := metaInfo{Creator: "com.github.fontgarden", FormatVersion: 3}
	if err := WritePlist(filepath.Join(path, "metainfo.plist"), meta); err != nil {
		return fmt.Errorf("write metainfo.plist: %w", err)
	}
	if f.Info != (FontInfo{}) {
		if err := WritePlist(filepath.Join(path, "fontinfo.plist"), f.Info); err != nil {
			return fmt.Errorf("write fontinfo.plist: %w", err)
		}
	}
	if len(f.Lib) > 0 {
		if err := WritePlist(filepath.Join(path, "lib.plist"), map[string]any(f.Lib)); err != nil {
			return fmt.Errorf("write lib.plist: %w", err)
		}
	}

	var contents [][]string
	existingDirs := make(map[string]bool)
	for _, l := range f.layers {
		dir := defaultLayerDir
		if l != f.defaultLayer {
			var err error
			dir, err = FileNameForLayerName(l.name, existingDirs)
			if err != nil {
				return fmt.Errorf("layer %q: %w", l.name, err)
			}
			existingDirs[strings.ToLower(dir)] = true
		}
		if err := saveLayer(l, filepath.Join(path, dir)); err != nil {
			return fmt.Errorf("save layer %q: %w", l.name, err)
		}
		contents = append(contents, []string{l.name, dir})
	}
	if err := WritePlist(filepath.Join(path, "layercontents.plist"), contents); err != nil {
		return fmt.Errorf("write layercontents.plist: %w", err)
	}
	return nil
}

func saveLayer(l *Layer, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create layer directory: %w", err)
	}
	contents := make(map[string]string, len(l.glyphs))
	existing := make(map[string]bool, len(l.glyphs))
	for _, name := range l.GlyphNames() {
		fileName, err := FileNameForGlyphName(name, existing)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", name, err)
		}
		existing[strings.ToLower(fileName)] = true
		contents[name] = fileName
		if err := l.glyphs[name].Save(filepath.Join(dir, fileName)); err != nil {
			return err
		}
	}
	return WritePlist(filepath.Join(dir, "contents.plist"), contents)
}

// ReadPlist reads an XML property list file into v.
func ReadPlist(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := plist.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// readOptionalPlist is ReadPlist for files whose absence means "empty".
func readOptionalPlist(path string, v any) error {
	err := ReadPlist(path, v)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// WritePlist writes v as an indented XML property list file.
func WritePlist(path string, v any) error {
	data, err := plist.MarshalIndent(v, plist.XMLFormat, "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
