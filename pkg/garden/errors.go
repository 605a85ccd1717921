package garden

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fontgarden/fontgarden/pkg/ufo"
)

// Sentinel errors for the load stage. Save and export failures are
// composed from wrapped I/O and font-object errors instead.
var (
	// ErrNotAFontgarden is returned by [Load] when the path is not a
	// directory.
	ErrNotAFontgarden = errors.New("a fontgarden must be a directory")

	// ErrNoDefaultLayer is returned when a source on disk has no
	// "glyphs" directory, or an imported font has no default layer.
	ErrNoDefaultLayer = errors.New("no default layer for source found")

	// ErrUnknownCategory is returned for OpenType category text that
	// does not name a known category.
	ErrUnknownCategory = errors.New("unrecognized OpenType category")

	// ErrSeparatorInName is returned for set and source names that
	// contain a path separator.
	ErrSeparatorInName = errors.New("name must not contain path separators")
)

// validateDirName checks an identifier that becomes a directory name
// verbatim on save. Separators would restructure the tree.
func validateDirName(name string) error {
	if err := ufo.ValidateName(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q: %w", name, ErrSeparatorInName)
	}
	return nil
}

// DuplicateGlyphsError reports that a set's coverage overlaps glyph
// names already claimed by previously loaded sets.
type DuplicateGlyphsError struct {
	Set    string
	Glyphs []string // sorted
}

func (e *DuplicateGlyphsError) Error() string {
	return fmt.Sprintf("set %q claims glyphs already in another set: %s",
		e.Set, strings.Join(e.Glyphs, ", "))
}
