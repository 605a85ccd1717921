package ufo

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNoFreeFileName is returned when the two-digit collision counter is
// exhausted: 99 numbered variants of the same stem already exist.
var ErrNoFreeFileName = errors.New("no free file name after 99 attempts")

// maxFileNameLength is the longest file name emitted, in characters,
// including prefix and suffix. 255 is the common filesystem limit.
const maxFileNameLength = 255

// reservedFileNames are identifiers that cannot be used as file names on
// Windows, compared case-insensitively against the generated stem.
var reservedFileNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// FileNameForGlyphName derives a .glif file name for a glyph name.
// existing holds the lowercased file names already used in the target
// directory; the returned name is guaranteed not to collide with any of
// them on a case-insensitive filesystem. The caller is responsible for
// adding the lowercased result to existing.
func FileNameForGlyphName(name string, existing map[string]bool) (string, error) {
	return fileName(name, "", ".glif", existing)
}

// FileNameForLayerName derives a directory name for a non-default layer.
// See [FileNameForGlyphName] for the existing-names contract.
func FileNameForLayerName(name string, existing map[string]bool) (string, error) {
	return fileName(name, "glyphs.", "", existing)
}

// fileName turns a user-facing name into a filesystem-safe file name:
//
//   - characters that are illegal in file names become underscores
//   - an initial period becomes an underscore when there is no prefix
//   - uppercase letters are followed by an underscore so that case
//     information survives on case-insensitive filesystems
//   - stems matching reserved OS device names get a leading underscore
//   - the result is capped at 255 characters and must not end in
//     periods or spaces
//
// If the result collides (case-insensitively) with a name in existing, a
// two-digit counter 01..99 is inserted before the suffix.
func fileName(name, prefix, suffix string, existing map[string]bool) (string, error) {
	var b strings.Builder
	b.WriteString(prefix)
	for i, r := range name {
		switch {
		case isIllegalFileNameRune(r):
			b.WriteByte('_')
		case i == 0 && r == '.' && prefix == "":
			b.WriteByte('_')
		case unicode.IsUpper(r):
			b.WriteRune(r)
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	result := b.String()
	if reservedFileNames[strings.ToLower(result)] {
		result = "_" + result
	}
	if max := maxFileNameLength - len([]rune(suffix)); runeLen(result) > max {
		result = truncateRunes(result, max)
	}
	if suffix == "" {
		result = replaceTrailingUnsafe(result)
	}
	result += suffix

	if !existing[strings.ToLower(result)] {
		return result, nil
	}
	stem := strings.TrimSuffix(result, suffix)
	// Leave room for the two counter digits so numbered candidates stay
	// within the cap.
	if max := maxFileNameLength - runeLen(suffix) - 2; runeLen(stem) > max {
		stem = truncateRunes(stem, max)
	}
	for n := 1; n <= 99; n++ {
		candidate := fmt.Sprintf("%s%02d%s", stem, n, suffix)
		if !existing[strings.ToLower(candidate)] {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrNoFreeFileName)
}

func isIllegalFileNameRune(r rune) bool {
	switch r {
	case ':', '"', '[', ']', '*', '/', '\\', '+', '<', '>', '|', '?':
		return true
	}
	return false
}

func runeLen(s string) int { return len([]rune(s)) }

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// replaceTrailingUnsafe replaces a trailing run of periods or spaces
// with underscores. Some filesystems silently strip those characters
// from the end of file names.
func replaceTrailingUnsafe(s string) string {
	trimmed := strings.TrimRight(s, ". ")
	return trimmed + strings.Repeat("_", len(s)-len(trimmed))
}
