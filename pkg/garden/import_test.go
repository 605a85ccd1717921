package garden

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

// testFont builds an in-memory font with a composite, a background
// layer, a color mark, and the metadata lib tables.
func testFont(t *testing.T) *ufo.Font {
	t.Helper()

	font := ufo.NewFont()
	font.Info = ufo.FontInfo{FamilyName: "Test", StyleName: "Regular"}
	require.NoError(t, font.RenameDefaultLayer("foreground"))

	a := ufo.NewGlyph("A")
	a.Width = 500
	a.Codepoints = []rune{'A'}
	acute := ufo.NewGlyph("acute")
	aacute := ufo.NewGlyph("Aacute")
	aacute.Width = 500
	aacute.Codepoints = []rune{0x00C1}
	aacute.Components = []ufo.Component{ufo.NewComponent("A"), ufo.NewComponent("acute")}
	aacute.Lib["public.markColor"] = "1,0,0,1"
	period := ufo.NewGlyph("period")
	period.Codepoints = []rune{'.'}

	for _, g := range []*ufo.Glyph{a, acute, aacute, period} {
		font.DefaultLayer().InsertGlyph(g)
	}

	background, err := font.NewLayer("public.background")
	require.NoError(t, err)
	sketch := a.Clone()
	sketch.Width = 490
	background.InsertGlyph(sketch)

	font.Lib["public.postscriptNames"] = map[string]any{"Aacute": "Aacute"}
	font.Lib["public.openTypeCategories"] = map[string]any{
		"A":      "base",
		"acute":  "mark",
		"Aacute": "base",
	}
	font.Lib["public.skipExportGlyphs"] = []any{"acute"}

	return font
}

func TestImportExpandsComposites(t *testing.T) {
	fg := New()
	font := testFont(t)

	require.NoError(t, fg.Import(font, map[string]bool{"Aacute": true}, "Latin", "Regular"))

	coverage := fg.Sets["Latin"].Coverage()
	assert.True(t, coverage["Aacute"])
	assert.True(t, coverage["A"], "component base should be pulled in")
	assert.True(t, coverage["acute"], "component mark should be pulled in")
	assert.False(t, coverage["period"], "unrequested glyph should stay out")
}

func TestImportMetadataFromLibTables(t *testing.T) {
	fg := New()
	require.NoError(t, fg.Import(testFont(t), map[string]bool{"Aacute": true}, "Latin", "Regular"))

	data := fg.Sets["Latin"].GlyphData
	assert.Equal(t, "Aacute", data["Aacute"].PostScriptName)
	assert.Equal(t, CategoryBase, data["Aacute"].Category)
	assert.Equal(t, []rune{0x00C1}, data["Aacute"].Codepoints)
	assert.Equal(t, CategoryMark, data["acute"].Category)
	assert.False(t, data["acute"].Export, "skipExportGlyphs entry must clear the export flag")
	assert.True(t, data["A"].Export)
}

func TestImportSplitsColorMark(t *testing.T) {
	fg := New()
	require.NoError(t, fg.Import(testFont(t), map[string]bool{"Aacute": true}, "Latin", "Regular"))

	layerName, layer := fg.Sets["Latin"].Sources["Regular"].DefaultLayer()
	assert.Equal(t, "foreground", layerName)

	glyph := layer.Glyphs["Aacute"]
	require.NotNil(t, glyph)
	assert.NotContains(t, glyph.Lib, "public.markColor")

	mark, ok := layer.ColorMarks["Aacute"]
	require.True(t, ok)
	assert.Equal(t, "1,0,0,1", mark.String())
}

func TestImportNonDefaultLayer(t *testing.T) {
	fg := New()
	require.NoError(t, fg.Import(testFont(t), map[string]bool{"A": true}, "Latin", "Regular"))

	source := fg.Sets["Latin"].Sources["Regular"]
	background, ok := source.Layers["public.background"]
	require.True(t, ok, "background drawing should come along")
	assert.False(t, background.Default)
	require.NotNil(t, background.Glyphs["A"])
	assert.Equal(t, 490.0, background.Glyphs["A"].Width)
}

func TestImportRoutesToClaimingSet(t *testing.T) {
	fg := New()
	font := testFont(t)

	require.NoError(t, fg.Import(font, map[string]bool{"A": true}, "Latin", "Regular"))
	// Importing the composite targets another set, but A is already
	// claimed by Latin and must stay there.
	require.NoError(t, fg.Import(font, map[string]bool{"Aacute": true}, "Accented", "Regular"))

	latin := fg.Sets["Latin"].Coverage()
	accented := fg.Sets["Accented"].Coverage()
	assert.True(t, latin["A"])
	assert.False(t, accented["A"])
	assert.True(t, accented["Aacute"])
	assert.True(t, accented["acute"])

	for name := range latin {
		assert.False(t, accented[name], "glyph %q covered twice", name)
	}
}

func TestImportIdempotent(t *testing.T) {
	font := testFont(t)
	glyphs := map[string]bool{"Aacute": true, "period": true}

	once := New()
	require.NoError(t, once.Import(font, glyphs, "Latin", "Regular"))

	twice := New()
	require.NoError(t, twice.Import(font, glyphs, "Latin", "Regular"))
	require.NoError(t, twice.Import(font, glyphs, "Latin", "Regular"))

	require.Equal(t, once, twice)
}

func TestImportReplacesChangedGlyph(t *testing.T) {
	fg := New()
	font := testFont(t)
	require.NoError(t, fg.Import(font, map[string]bool{"A": true}, "Latin", "Regular"))

	wider, _ := font.Glyph("A")
	wider.Width = 750
	require.NoError(t, fg.Import(font, map[string]bool{"A": true}, "Latin", "Regular"))

	_, layer := fg.Sets["Latin"].Sources["Regular"].DefaultLayer()
	assert.Equal(t, 750.0, layer.Glyphs["A"].Width)
}

func TestImportDropsUnknownGlyphs(t *testing.T) {
	fg := New()
	require.NoError(t, fg.Import(testFont(t), map[string]bool{"A": true, "Omega": true}, "Latin", "Regular"))

	coverage := fg.Sets["Latin"].Coverage()
	assert.True(t, coverage["A"])
	assert.False(t, coverage["Omega"])
}

func TestImportRejectsInvalidNames(t *testing.T) {
	fg := New()
	font := testFont(t)
	glyphs := map[string]bool{"A": true}

	err := fg.Import(font, glyphs, "La/tin", "Regular")
	require.ErrorIs(t, err, ErrSeparatorInName)

	err = fg.Import(font, glyphs, "Latin", `Reg\ular`)
	require.ErrorIs(t, err, ErrSeparatorInName)

	err = fg.Import(font, glyphs, "", "Regular")
	require.ErrorIs(t, err, ufo.ErrEmptyName)

	err = fg.Import(font, glyphs, "Latin", "Reg\nular")
	require.ErrorIs(t, err, ufo.ErrControlCharacter)

	assert.Empty(t, fg.Sets, "a rejected import must not create sets")
}

func TestImportSecondSourceSharesMetadata(t *testing.T) {
	fg := New()
	regular := testFont(t)
	require.NoError(t, fg.Import(regular, map[string]bool{"A": true}, "Latin", "Regular"))

	bold := testFont(t)
	bold.Info.StyleName = "Bold"
	boldA, _ := bold.Glyph("A")
	boldA.Width = 560
	require.NoError(t, fg.Import(bold, map[string]bool{"A": true}, "Latin", "Bold"))

	set := fg.Sets["Latin"]
	assert.Len(t, set.Sources, 2)
	assert.Contains(t, set.GlyphData, "A")

	_, regularLayer := set.Sources["Regular"].DefaultLayer()
	_, boldLayer := set.Sources["Bold"].DefaultLayer()
	assert.Equal(t, 500.0, regularLayer.Glyphs["A"].Width)
	assert.Equal(t, 560.0, boldLayer.Glyphs["A"].Width)
}
