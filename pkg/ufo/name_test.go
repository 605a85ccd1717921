package ufo

import (
	"errors"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"ascii", "Aacute", nil},
		{"period and underscore", "a.sc_alt", nil},
		{"unicode", "größe", nil},
		{"space allowed", "my layer", nil},
		{"empty", "", ErrEmptyName},
		{"newline", "a\nb", ErrControlCharacter},
		{"tab", "a\tb", ErrControlCharacter},
		{"delete", "a\x7fb", ErrControlCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
