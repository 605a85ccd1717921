package garden

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

func TestParseCodepoints(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []rune
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single", "0041", []rune{'A'}, false},
		{"multiple ordered", "0041 0061", []rune{'A', 'a'}, false},
		{"duplicates collapsed first wins", "0061 0041 0061", []rune{'a', 'A'}, false},
		{"astral plane", "1F600", []rune{0x1F600}, false},
		{"not hex", "zzzz", nil, true},
		{"beyond unicode", "110000", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCodepoints(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCodepoints(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCodepoints(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCodepoints(t *testing.T) {
	got := formatCodepoints([]rune{'A', 0x1F600})
	if want := "0041 1F600"; got != want {
		t.Errorf("formatCodepoints = %q, want %q", got, want)
	}
}

func TestGlyphDataRoundTrip(t *testing.T) {
	data := map[string]GlyphRecord{
		"A":      {PostScriptName: "A", Codepoints: []rune{'A'}, Category: CategoryBase, Export: true},
		"acute":  {Category: CategoryMark, Export: false},
		"f_f_i":  {PostScriptName: "ffi", Category: CategoryLigature, Export: true},
		"spacer": {Export: true},
	}

	path := filepath.Join(t.TempDir(), "glyph_data.csv")
	if err := writeGlyphData(data, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := loadGlyphData(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, data) {
		t.Errorf("round trip mismatch:\nwrote  %+v\nloaded %+v", data, loaded)
	}
}

func TestLoadGlyphDataAbsentFile(t *testing.T) {
	data, err := loadGlyphData(filepath.Join(t.TempDir(), "glyph_data.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty table, got %v", data)
	}
}

func TestLoadGlyphDataOptionalExportColumn(t *testing.T) {
	const csv = "name,postscript_name,codepoints,opentype_category,export\nA,,0041,base\n"
	path := filepath.Join(t.TempDir(), "glyph_data.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := loadGlyphData(path)
	if err != nil {
		t.Fatal(err)
	}
	record, ok := data["A"]
	if !ok {
		t.Fatal("glyph A missing")
	}
	if !record.Export {
		t.Error("export defaults to true when the column is absent")
	}
}

func TestLoadGlyphDataErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"too few columns", "name,postscript_name,codepoints,opentype_category,export\nA,,0041\n"},
		{"bad codepoint", "name,postscript_name,codepoints,opentype_category,export\nA,,notunicode,base,true\n"},
		{"bad category", "name,postscript_name,codepoints,opentype_category,export\nA,,0041,vowel,true\n"},
		{"bad export flag", "name,postscript_name,codepoints,opentype_category,export\nA,,0041,base,maybe\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "glyph_data.csv")
			if err := os.WriteFile(path, []byte(tt.csv), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := loadGlyphData(path); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestLoadColorMarksErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"short header short row", "name\nA\n"},
		{"missing color column", "name,color\nA\n"},
		{"empty glyph name", "name,color\n,\"1,0,0,1\"\n"},
		{"bad color", "name,color\nA,notacolor\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "color_marks.csv")
			if err := os.WriteFile(path, []byte(tt.csv), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := loadColorMarks(path); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestColorMarksRoundTrip(t *testing.T) {
	red, err := ufo.ParseColor("1,0,0,1")
	if err != nil {
		t.Fatal(err)
	}
	faded, err := ufo.ParseColor("0.2,0.4,0.6,0.8")
	if err != nil {
		t.Fatal(err)
	}
	marks := map[string]ufo.Color{"A": red, "Aacute": faded}

	path := filepath.Join(t.TempDir(), "color_marks.csv")
	if err := writeColorMarks(marks, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := loadColorMarks(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, marks) {
		t.Errorf("round trip mismatch:\nwrote  %v\nloaded %v", marks, loaded)
	}
}
