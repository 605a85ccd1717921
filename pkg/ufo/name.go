package ufo

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned by [ValidateName] for the empty string.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrControlCharacter is returned by [ValidateName] when a name
	// contains a character below U+0020 or the delete character U+007F.
	ErrControlCharacter = errors.New("name must not contain control characters")
)

// ValidateName reports whether s is a valid glyph, layer, set, or source
// identifier. Valid names are non-empty and contain no ASCII control
// characters. Any other Unicode character is allowed; file-system safety
// is the concern of the file naming functions, not of the identifier.
func ValidateName(s string) error {
	if s == "" {
		return ErrEmptyName
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			return fmt.Errorf("%q: %w", s, ErrControlCharacter)
		}
	}
	return nil
}
