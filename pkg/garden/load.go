package garden

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

const (
	setDirPrefix    = "set."
	sourceDirPrefix = "source."
	layerDirDefault = "glyphs"
	layerDirPrefix  = "glyphs."
)

// layerInfo is the small per-layer metadata file. It records the layer's
// logical name, which survives even when the directory name had to be
// mangled for filesystem safety.
type layerInfo struct {
	Name string `plist:"name"`
}

// Load reads a fontgarden repository from disk. It fails if root is not
// a directory, if any set, source, or layer fails to load, or the moment
// a set's coverage overlaps glyph names claimed by a previously loaded
// set.
func Load(root string) (*Fontgarden, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotAFontgarden)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root, err)
	}

	fg := New()
	seen := make(map[string]bool)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), setDirPrefix) {
			continue
		}
		setName := strings.TrimPrefix(entry.Name(), setDirPrefix)
		if err := ufo.ValidateName(setName); err != nil {
			return nil, fmt.Errorf("invalid set name: %w", err)
		}
		set, err := loadSet(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("load set %q: %w", setName, err)
		}

		coverage := set.Coverage()
		var overlap []string
		for name := range coverage {
			if seen[name] {
				overlap = append(overlap, name)
			}
		}
		if len(overlap) > 0 {
			slices.Sort(overlap)
			return nil, &DuplicateGlyphsError{Set: setName, Glyphs: overlap}
		}
		maps.Copy(seen, coverage)

		fg.Sets[setName] = set
	}
	return fg, nil
}

func loadSet(dir string) (*Set, error) {
	set := newSet()

	glyphData, err := loadGlyphData(filepath.Join(dir, "glyph_data.csv"))
	if err != nil {
		return nil, fmt.Errorf("read glyph_data.csv: %w", err)
	}
	set.GlyphData = glyphData

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), sourceDirPrefix) {
			continue
		}
		sourceName := strings.TrimPrefix(entry.Name(), sourceDirPrefix)
		if err := ufo.ValidateName(sourceName); err != nil {
			return nil, fmt.Errorf("invalid source name: %w", err)
		}
		source, err := loadSource(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("load source %q: %w", sourceName, err)
		}
		set.Sources[sourceName] = source
	}
	return set, nil
}

func loadSource(dir string) (*Source, error) {
	source := &Source{Layers: make(map[string]*Layer)}
	foundDefault := false

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		name := entry.Name()
		isDefault := name == layerDirDefault
		if !entry.IsDir() || !(isDefault || strings.HasPrefix(name, layerDirPrefix)) {
			continue
		}
		layerName, layer, err := loadLayer(filepath.Join(dir, name), isDefault)
		if err != nil {
			return nil, fmt.Errorf("load layer %q: %w", name, err)
		}
		source.Layers[layerName] = layer
		if isDefault {
			foundDefault = true
		}
	}

	if !foundDefault {
		return nil, ErrNoDefaultLayer
	}
	return source, nil
}

func loadLayer(dir string, isDefault bool) (string, *Layer, error) {
	var info layerInfo
	if err := ufo.ReadPlist(filepath.Join(dir, "layerinfo.plist"), &info); err != nil {
		return "", nil, fmt.Errorf("read layerinfo.plist: %w", err)
	}
	if err := ufo.ValidateName(info.Name); err != nil {
		return "", nil, fmt.Errorf("invalid layer name: %w", err)
	}

	layer := newLayer(isDefault)
	marks, err := loadColorMarks(filepath.Join(dir, "color_marks.csv"))
	if err != nil {
		return "", nil, fmt.Errorf("read color_marks.csv: %w", err)
	}
	layer.ColorMarks = marks

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".glif") {
			continue
		}
		glyph, err := ufo.LoadGlyph(filepath.Join(dir, entry.Name()))
		if err != nil {
			return "", nil, fmt.Errorf("load glyph: %w", err)
		}
		layer.Glyphs[glyph.Name] = glyph
	}
	return info.Name, layer, nil
}
