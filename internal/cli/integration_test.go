package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/fontgarden/fontgarden/pkg/garden"
	"github.com/fontgarden/fontgarden/pkg/ufo"
)

func writeTestFont(t *testing.T, dir string) string {
	t.Helper()

	font := ufo.NewFont()
	font.Info = ufo.FontInfo{FamilyName: "Test", StyleName: "Regular"}

	a := ufo.NewGlyph("A")
	a.Width = 500
	a.Codepoints = []rune{'A'}
	aacute := ufo.NewGlyph("Aacute")
	aacute.Components = []ufo.Component{ufo.NewComponent("A"), ufo.NewComponent("acute")}
	acute := ufo.NewGlyph("acute")
	period := ufo.NewGlyph("period")
	period.Codepoints = []rune{'.'}
	for _, g := range []*ufo.Glyph{a, aacute, acute, period} {
		font.DefaultLayer().InsertGlyph(g)
	}

	path := filepath.Join(dir, "Test-Regular.ufo")
	if err := font.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportExportFlow(t *testing.T) {
	dir := t.TempDir()
	repo := filepath.Join(dir, "repo.fontgarden")
	fontPath := writeTestFont(t, dir)

	latinList := filepath.Join(dir, "latin.txt")
	if err := os.WriteFile(latinList, []byte("Aacute\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	punctList := filepath.Join(dir, "punct.txt")
	if err := os.WriteFile(punctList, []byte("period\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(newNewCmd(), repo); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(newImportCmd(), repo, fontPath,
		"--glyphs-file", latinList, "--set", "Latin",
		"--glyphs-file", punctList, "--set", "Punctuation",
	); err != nil {
		t.Fatal(err)
	}

	fg, err := garden.Load(repo)
	if err != nil {
		t.Fatal(err)
	}
	if got := fg.SetNames(); !slices.Equal(got, []string{"Latin", "Punctuation"}) {
		t.Fatalf("SetNames = %v, want [Latin Punctuation]", got)
	}
	if !fg.Sets["Latin"].Coverage()["acute"] {
		t.Error("composite closure should have pulled acute into Latin")
	}

	outDir := filepath.Join(dir, "out")
	if err := runCommand(newExportCmd(), repo, "--set", "Latin", "--set", "Punctuation", "--output-dir", outDir); err != nil {
		t.Fatal(err)
	}

	exported, err := ufo.LoadFont(filepath.Join(outDir, "Regular.ufo"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A", "Aacute", "acute", "period"}
	if got := exported.GlyphNames(); !slices.Equal(got, want) {
		t.Errorf("exported GlyphNames = %v, want %v", got, want)
	}
}

func TestImportWithPlan(t *testing.T) {
	dir := t.TempDir()
	repo := filepath.Join(dir, "repo.fontgarden")
	fontPath := writeTestFont(t, dir)

	plan := filepath.Join(dir, "plan.toml")
	if err := os.WriteFile(plan, []byte(`
source = "Planned"

[[batch]]
set = "Latin"
glyphs = ["A"]
`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(newNewCmd(), repo); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(newImportCmd(), repo, fontPath, "--plan", plan); err != nil {
		t.Fatal(err)
	}

	fg, err := garden.Load(repo)
	if err != nil {
		t.Fatal(err)
	}
	source, ok := fg.Sets["Latin"].Sources["Planned"]
	if !ok {
		t.Fatal("plan-level source name not used")
	}
	_, layer := source.DefaultLayer()
	if _, ok := layer.Glyphs["A"]; !ok {
		t.Error("glyph A missing from planned import")
	}
}
