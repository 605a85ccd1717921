package garden

import (
	"fmt"
	maps "golang.org/x/exp/maps"
	"slices"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

// markColorKey is the glyph lib key carrying a glyph's display color.
// On import the color is split out into the layer's color-mark table;
// on export it is embedded back into the glyph.
const markColorKey = "public.markColor"

// Import merges glyphs from a font document into the repository under
// the given source name.
//
// The requested names are first expanded to their composite closure
// within font, so importing a composite always pulls in every glyph it
// depends on. Names are then routed: a glyph already covered by an
// existing set stays in that set, whatever target the caller named;
// only unclaimed names go to setName (created on demand). Per routed
// set, metadata is refreshed from the font's lib tables and the routed
// glyphs are merged layer by layer, replacing same-named glyphs. The
// font's default layer always merges into the source's default layer
// regardless of name.
func (fg *Fontgarden) Import(font *ufo.Font, glyphs map[string]bool, setName, sourceName string) error {
	if err := validateDirName(setName); err != nil {
		return fmt.Errorf("set name: %w", err)
	}
	if err := validateDirName(sourceName); err != nil {
		return fmt.Errorf("source name: %w", err)
	}

	present := make(map[string]bool)
	for _, name := range font.GlyphNames() {
		present[name] = true
	}
	expanded := Closure(glyphs, fontComponents(font))
	// Requested or component-referenced names the font does not contain
	// are dropped silently.
	for name := range expanded {
		if !present[name] {
			delete(expanded, name)
		}
	}

	glyphData, err := extractGlyphData(font, expanded)
	if err != nil {
		return err
	}

	// Route: names already covered by a set stay there; the rest go to
	// the caller's target set.
	leftovers := maps.Clone(expanded)
	routed := make(map[string]map[string]bool)
	for _, existingName := range fg.SetNames() {
		coverage := fg.Sets[existingName].Coverage()
		var claimed map[string]bool
		for name := range expanded {
			if coverage[name] {
				if claimed == nil {
					claimed = make(map[string]bool)
				}
				claimed[name] = true
				delete(leftovers, name)
			}
		}
		if claimed != nil {
			routed[existingName] = claimed
		}
	}
	if len(leftovers) > 0 {
		merged := routed[setName]
		if merged == nil {
			routed[setName] = leftovers
		} else {
			maps.Copy(merged, leftovers)
		}
	}

	sortedKeys := maps.Keys(routed)
	slices.Sort(sortedKeys)
	for _, targetName := range sortedKeys {
		if err := fg.mergeInto(targetName, routed[targetName], font, sourceName, glyphData); err != nil {
			return fmt.Errorf("import into set %q: %w", targetName, err)
		}
	}
	return nil
}

// mergeInto merges the routed glyph subset into one target set.
func (fg *Fontgarden) mergeInto(setName string, routed map[string]bool, font *ufo.Font, sourceName string, glyphData map[string]GlyphRecord) error {
	set := fg.setOrCreate(setName)
	for name := range routed {
		if record, ok := glyphData[name]; ok {
			set.GlyphData[name] = record
			delete(glyphData, name)
		}
	}

	source := set.sourceOrCreate(sourceName, font.DefaultLayer().Name())
	for _, fontLayer := range font.Layers() {
		glyphs, marks, err := extractLayer(fontLayer, routed)
		if err != nil {
			return fmt.Errorf("layer %q: %w", fontLayer.Name(), err)
		}
		if len(glyphs) == 0 {
			continue
		}

		var target *Layer
		if fontLayer == font.DefaultLayer() {
			_, target = source.DefaultLayer()
		} else {
			target = source.layerOrCreate(fontLayer.Name())
		}
		maps.Copy(target.Glyphs, glyphs)
		maps.Copy(target.ColorMarks, marks)
	}
	return nil
}

// fontComponents is the component lookup for [Closure]: the union of
// component references for a glyph name across every layer of the font.
func fontComponents(font *ufo.Font) func(string) []string {
	return func(name string) []string {
		var bases []string
		for _, layer := range font.Layers() {
			if glyph, ok := layer.Glyph(name); ok {
				bases = append(bases, glyph.ComponentBases()...)
			}
		}
		return bases
	}
}

// extractLayer copies the routed glyphs out of a font layer. Each glyph
// is cloned and its mark color, if any, is split out of the glyph lib
// into the color table, round-tripped through the canonical string form
// so repeated export/import stays equality-stable.
func extractLayer(layer *ufo.Layer, routed map[string]bool) (map[string]*ufo.Glyph, map[string]ufo.Color, error) {
	glyphs := make(map[string]*ufo.Glyph)
	marks := make(map[string]ufo.Color)
	for _, glyph := range layer.Glyphs() {
		if !routed[glyph.Name] {
			continue
		}
		ours := glyph.Clone()
		if raw := ours.Lib.String(markColorKey); raw != "" {
			color, err := ufo.ParseColor(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("glyph %q: %w", glyph.Name, err)
			}
			marks[glyph.Name] = color
			delete(ours.Lib, markColorKey)
		}
		glyphs[glyph.Name] = ours
	}
	return glyphs, marks, nil
}

// extractGlyphData builds metadata records for the given names from the
// font's lib tables: public.postscriptNames, public.openTypeCategories,
// and public.skipExportGlyphs. Glyphs absent from those tables get
// default metadata; codepoints come from the default-layer glyph.
func extractGlyphData(font *ufo.Font, names map[string]bool) (map[string]GlyphRecord, error) {
	postscriptNames := font.Lib.Dict("public.postscriptNames")
	categories := font.Lib.Dict("public.openTypeCategories")
	skipExport := make(map[string]bool)
	for _, name := range font.Lib.Strings("public.skipExportGlyphs") {
		skipExport[name] = true
	}

	data := make(map[string]GlyphRecord, len(names))
	for name := range names {
		record := GlyphRecord{Export: !skipExport[name]}
		if glyph, ok := font.Glyph(name); ok {
			record.Codepoints = slices.Clone(glyph.Codepoints)
		}
		if ps, ok := postscriptNames[name].(string); ok {
			record.PostScriptName = ps
		}
		if raw, ok := categories[name].(string); ok {
			category, err := ParseCategory(raw)
			if err != nil {
				return nil, fmt.Errorf("glyph %q: %w", name, err)
			}
			record.Category = category
		}
		data[name] = record
	}
	return data, nil
}
