package garden

import (
	"fmt"
	maps "golang.org/x/exp/maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

// Save writes the repository to root, replacing any existing directory
// wholesale. The operation is all-or-nothing from the caller's point of
// view but not crash-atomic: a crash mid-save leaves a partial tree.
// Callers that need atomicity should save to a temporary path and
// rename it over the target.
func (fg *Fontgarden) Save(root string) error {
	if _, err := os.Stat(root); err == nil {
		if err := os.RemoveAll(root); err != nil {
			return fmt.Errorf("clear target directory: %w", err)
		}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	for _, setName := range fg.SetNames() {
		if err := saveSet(fg.Sets[setName], setName, root); err != nil {
			return fmt.Errorf("save set %q: %w", setName, err)
		}
	}
	return nil
}

func saveSet(set *Set, setName, root string) error {
	dir := filepath.Join(root, setDirPrefix+setName)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return err
	}
	if err := writeGlyphData(set.GlyphData, filepath.Join(dir, "glyph_data.csv")); err != nil {
		return fmt.Errorf("write glyph_data.csv: %w", err)
	}
	sortedKeys := maps.Keys(set.Sources)
	slices.Sort(sortedKeys)
	for _, sourceName := range sortedKeys {
		if err := saveSource(set.Sources[sourceName], sourceName, dir); err != nil {
			return fmt.Errorf("save source %q: %w", sourceName, err)
		}
	}
	return nil
}

func saveSource(source *Source, sourceName, setDir string) error {
	dir := filepath.Join(setDir, sourceDirPrefix+sourceName)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return err
	}

	existingDirs := make(map[string]bool)
	sortedKeys := maps.Keys(source.Layers)
	slices.Sort(sortedKeys)
	for _, layerName := range sortedKeys {
		layer := source.Layers[layerName]
		// The default layer is always written, even when empty, so a
		// source round-trips; empty non-default layers are dropped.
		if !layer.Default && len(layer.Glyphs) == 0 {
			continue
		}

		layerDir := layerDirDefault
		if !layer.Default {
			var err error
			layerDir, err = ufo.FileNameForLayerName(layerName, existingDirs)
			if err != nil {
				return fmt.Errorf("save layer %q: %w", layerName, err)
			}
			existingDirs[strings.ToLower(layerDir)] = true
		}
		if err := saveLayer(layer, layerName, filepath.Join(dir, layerDir)); err != nil {
			return fmt.Errorf("save layer %q: %w", layerName, err)
		}
	}
	return nil
}

func saveLayer(layer *Layer, layerName, dir string) error {
	if err := os.Mkdir(dir, 0o755); err != nil {
		return err
	}
	if err := ufo.WritePlist(filepath.Join(dir, "layerinfo.plist"), layerInfo{Name: layerName}); err != nil {
		return fmt.Errorf("write layerinfo.plist: %w", err)
	}

	existing := make(map[string]bool, len(layer.Glyphs))
	sortedKeys := maps.Keys(layer.Glyphs)
	slices.Sort(sortedKeys)
	for _, glyphName := range sortedKeys {
		fileName, err := ufo.FileNameForGlyphName(glyphName, existing)
		if err != nil {
			return fmt.Errorf("save glyph %q: %w", glyphName, err)
		}
		existing[strings.ToLower(fileName)] = true
		if err := layer.Glyphs[glyphName].Save(filepath.Join(dir, fileName)); err != nil {
			return fmt.Errorf("save glyph %q: %w", glyphName, err)
		}
	}

	if err := writeColorMarks(layer.ColorMarks, filepath.Join(dir, "color_marks.csv")); err != nil {
		return fmt.Errorf("write color_marks.csv: %w", err)
	}
	return nil
}
