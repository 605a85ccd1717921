package garden

import (
	"fmt"
	maps "golang.org/x/exp/maps"
	"slices"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

// Export assembles font documents for the requested source names,
// restricted to the requested glyphs closed under composite
// dependencies. A nil sourceNames selects every source. Sources with
// the same name across different sets are unioned into one document.
// Sources left with no glyphs after pruning are omitted; the result
// never contains empty documents.
func (fg *Fontgarden) Export(glyphs map[string]bool, sourceNames map[string]bool) (map[string]*ufo.Font, error) {
	assembled := fg.assembleSources(sourceNames)

	// Prune every layer to the requested glyphs, closed under the
	// layer's own component references so the closure reflects exactly
	// what the assembled view contains.
	for _, source := range assembled {
		for _, layer := range source.Layers {
			closed := Closure(glyphs, layerComponents(layer))
			maps.DeleteFunc(layer.Glyphs, func(name string, _ *ufo.Glyph) bool {
				return !closed[name]
			})
			maps.DeleteFunc(layer.ColorMarks, func(name string, _ ufo.Color) bool {
				return !closed[name]
			})
		}
	}

	fonts := make(map[string]*ufo.Font)
	sortedKeys := maps.Keys(assembled)
	slices.Sort(sortedKeys)
	for _, sourceName := range sortedKeys {
		font, err := emitSource(assembled[sourceName])
		if err != nil {
			return nil, fmt.Errorf("export source %q: %w", sourceName, err)
		}
		if font != nil {
			fonts[sourceName] = font
		}
	}
	return fonts, nil
}

// assembleSources unions same-named sources across all sets into
// standalone accumulator sources. Layer maps are fresh; the glyph
// pointers still alias the repository until emit clones them.
func (fg *Fontgarden) assembleSources(sourceNames map[string]bool) map[string]*Source {
	assembled := make(map[string]*Source)
	for _, setName := range fg.SetNames() {
		set := fg.Sets[setName]
		sortedKeys := maps.Keys(set.Sources)
		slices.Sort(sortedKeys)
		for _, sourceName := range sortedKeys {
			if sourceNames != nil && !sourceNames[sourceName] {
				continue
			}
			source := set.Sources[sourceName]
			acc := assembled[sourceName]
			if acc == nil {
				acc = &Source{Layers: make(map[string]*Layer)}
				assembled[sourceName] = acc
			}
			for layerName, layer := range source.Layers {
				accLayer, ok := acc.Layers[layerName]
				if !ok {
					accLayer = newLayer(layer.Default)
					acc.Layers[layerName] = accLayer
				}
				maps.Copy(accLayer.Glyphs, layer.Glyphs)
				maps.Copy(accLayer.ColorMarks, layer.ColorMarks)
				accLayer.Default = layer.Default
			}
		}
	}
	return assembled
}

// layerComponents is the component lookup for [Closure] within a single
// assembled layer. Unknown names expand to nothing.
func layerComponents(layer *Layer) func(string) []string {
	return func(name string) []string {
		if glyph, ok := layer.Glyphs[name]; ok {
			return glyph.ComponentBases()
		}
		return nil
	}
}

// emitSource builds the output document for one pruned source. Returns
// nil if no layer has any surviving glyph.
func emitSource(source *Source) (*ufo.Font, error) {
	empty := true
	for _, layer := range source.Layers {
		if len(layer.Glyphs) > 0 {
			empty = false
			break
		}
	}
	if empty {
		return nil, nil
	}

	font := ufo.NewFont()
	sortedKeys := maps.Keys(source.Layers)
	slices.Sort(sortedKeys)
	for _, layerName := range sortedKeys {
		layer := source.Layers[layerName]
		if len(layer.Glyphs) == 0 {
			continue
		}

		var target *ufo.Layer
		if layer.Default {
			target = font.DefaultLayer()
			if layerName != target.Name() {
				if err := font.RenameDefaultLayer(layerName); err != nil {
					return nil, err
				}
			}
		} else {
			var ok bool
			if target, ok = font.Layer(layerName); !ok {
				var err error
				if target, err = font.NewLayer(layerName); err != nil {
					return nil, err
				}
			}
		}
		fillLayer(target, layer)
	}
	return font, nil
}

// fillLayer copies a repository layer into an output font layer,
// re-embedding color marks into each glyph's lib.
func fillLayer(target *ufo.Layer, layer *Layer) {
	for name, glyph := range layer.Glyphs {
		out := glyph.Clone()
		if color, ok := layer.ColorMarks[name]; ok {
			if out.Lib == nil {
				out.Lib = ufo.Lib{}
			}
			out.Lib[markColorKey] = color.String()
		}
		target.InsertGlyph(out)
	}
}
