package garden

import (
	"encoding/csv"
	"fmt"
	maps "golang.org/x/exp/maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

var glyphDataHeader = []string{"name", "postscript_name", "codepoints", "opentype_category", "export"}

// loadGlyphData reads a set's glyph_data.csv. An absent file is an empty
// table: pre-existing repositories may not have written one yet.
func loadGlyphData(path string) (map[string]GlyphRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]GlyphRecord), nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // the export column is optional
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	data := make(map[string]GlyphRecord)
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("row %d: expected at least 4 columns, got %d", i+1, len(row))
		}
		name := row[0]
		if err := ufo.ValidateName(name); err != nil {
			return nil, fmt.Errorf("row %d: invalid glyph name: %w", i+1, err)
		}
		codepoints, err := parseCodepoints(row[2])
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", name, err)
		}
		category, err := ParseCategory(row[3])
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", name, err)
		}
		export := true
		if len(row) > 4 && row[4] != "" {
			export, err = strconv.ParseBool(row[4])
			if err != nil {
				return nil, fmt.Errorf("glyph %q: export flag %q: %w", name, row[4], err)
			}
		}
		data[name] = GlyphRecord{
			PostScriptName: row[1],
			Codepoints:     codepoints,
			Category:       category,
			Export:         export,
		}
	}
	return data, nil
}

func writeGlyphData(data map[string]GlyphRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(glyphDataHeader); err != nil {
		return err
	}
	sortedKeys := maps.Keys(data)
	slices.Sort(sortedKeys)
	for _, name := range sortedKeys {
		record := data[name]
		row := []string{
			name,
			record.PostScriptName,
			formatCodepoints(record.Codepoints),
			record.Category.marshal(),
			strconv.FormatBool(record.Export),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// loadColorMarks reads a layer's color_marks.csv. Absent file means no
// marks, not an error.
func loadColorMarks(path string) (map[string]ufo.Color, error) {
	marks := make(map[string]ufo.Color)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return marks, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected 2 columns, got %d", i+1, len(row))
		}
		name := row[0]
		if err := ufo.ValidateName(name); err != nil {
			return nil, fmt.Errorf("row %d: invalid glyph name: %w", i+1, err)
		}
		color, err := ufo.ParseColor(row[1])
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", name, err)
		}
		marks[name] = color
	}
	return marks, nil
}

func writeColorMarks(marks map[string]ufo.Color, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "color"}); err != nil {
		return err
	}
	sortedKeys := maps.Keys(marks)
	slices.Sort(sortedKeys)
	for _, name := range sortedKeys {
		if err := w.Write([]string{name, marks[name].String()}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// parseCodepoints parses a whitespace-separated list of uppercase hex
// code points. Duplicates are collapsed, first occurrence wins, order is
// preserved.
func parseCodepoints(s string) ([]rune, error) {
	var codepoints []rune
	seen := make(map[rune]bool)
	for _, token := range strings.Fields(s) {
		v, err := strconv.ParseUint(token, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("code point %q: %w", token, err)
		}
		if v > utf8.MaxRune {
			return nil, fmt.Errorf("code point %q: beyond U+10FFFF", token)
		}
		r := rune(v)
		if !seen[r] {
			seen[r] = true
			codepoints = append(codepoints, r)
		}
	}
	return codepoints, nil
}

func formatCodepoints(codepoints []rune) string {
	hex := make([]string, len(codepoints))
	for i, r := range codepoints {
		hex[i] = fmt.Sprintf("%04X", r)
	}
	return strings.Join(hex, " ")
}
