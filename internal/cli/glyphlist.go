package cli

import (
	"fmt"
	"os"
	"strings"
)

// readGlyphList reads a text file of glyph names, one per line.
// Surrounding whitespace is trimmed and empty lines are skipped.
func readGlyphList(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glyph list: %w", err)
	}
	return parseGlyphList(string(data)), nil
}

func parseGlyphList(text string) map[string]bool {
	names := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		names[name] = true
	}
	return names
}
