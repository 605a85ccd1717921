package cli

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// importPlan is the TOML form of an import: a list of set/glyph batches,
// equivalent to repeated --set/--glyphs-file flag pairs.
//
//	source = "LightWide"        # optional, default: the font's style name
//
//	[[batch]]
//	set = "Latin"
//	glyphs = ["A", "Aacute"]
//
//	[[batch]]
//	set = "Punctuation"
//	glyphs_file = "punctuation.txt"
type importPlan struct {
	Source string      `toml:"source"`
	Batch  []planBatch `toml:"batch"`
}

type planBatch struct {
	Set        string   `toml:"set"`
	Glyphs     []string `toml:"glyphs"`
	GlyphsFile string   `toml:"glyphs_file"`
}

// importBatch is one resolved unit of import work: a target set and the
// requested glyph names.
type importBatch struct {
	set    string
	glyphs map[string]bool
}

// loadPlan reads and validates a TOML import plan. Relative glyphs_file
// paths are resolved against the plan file's directory.
func loadPlan(path string) (*importPlan, []importBatch, error) {
	var plan importPlan
	if _, err := toml.DecodeFile(path, &plan); err != nil {
		return nil, nil, fmt.Errorf("read plan: %w", err)
	}
	if len(plan.Batch) == 0 {
		return nil, nil, fmt.Errorf("plan %s: no [[batch]] entries", path)
	}

	dir := filepath.Dir(path)
	batches := make([]importBatch, 0, len(plan.Batch))
	for i, b := range plan.Batch {
		if b.Set == "" {
			return nil, nil, fmt.Errorf("plan %s: batch %d: missing set name", path, i+1)
		}
		if (len(b.Glyphs) > 0) == (b.GlyphsFile != "") {
			return nil, nil, fmt.Errorf("plan %s: batch %d (set %q): need exactly one of glyphs or glyphs_file", path, i+1, b.Set)
		}

		glyphs := make(map[string]bool, len(b.Glyphs))
		for _, name := range b.Glyphs {
			glyphs[name] = true
		}
		if b.GlyphsFile != "" {
			file := b.GlyphsFile
			if !filepath.IsAbs(file) {
				file = filepath.Join(dir, file)
			}
			var err error
			if glyphs, err = readGlyphList(file); err != nil {
				return nil, nil, fmt.Errorf("plan %s: batch %d (set %q): %w", path, i+1, b.Set, err)
			}
		}
		batches = append(batches, importBatch{set: b.Set, glyphs: glyphs})
	}
	return &plan, batches, nil
}
