package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writePlanFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "plan.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "punct.txt"), []byte("period\ncomma\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path := writePlanFile(t, dir, `
source = "LightWide"

[[batch]]
set = "Latin"
glyphs = ["A", "Aacute"]

[[batch]]
set = "Punctuation"
glyphs_file = "punct.txt"
`)

	plan, batches, err := loadPlan(path)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Source != "LightWide" {
		t.Errorf("Source = %q, want %q", plan.Source, "LightWide")
	}
	if len(batches) != 2 {
		t.Fatalf("batch count = %d, want 2", len(batches))
	}
	if batches[0].set != "Latin" {
		t.Errorf("batch 0 set = %q, want Latin", batches[0].set)
	}
	if want := map[string]bool{"A": true, "Aacute": true}; !reflect.DeepEqual(batches[0].glyphs, want) {
		t.Errorf("batch 0 glyphs = %v, want %v", batches[0].glyphs, want)
	}
	if want := map[string]bool{"period": true, "comma": true}; !reflect.DeepEqual(batches[1].glyphs, want) {
		t.Errorf("batch 1 glyphs = %v, want %v", batches[1].glyphs, want)
	}
}

func TestLoadPlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"no batches", `source = "Regular"`, "no [[batch]] entries"},
		{"missing set", "[[batch]]\nglyphs = [\"A\"]\n", "missing set name"},
		{"both glyph forms", "[[batch]]\nset = \"Latin\"\nglyphs = [\"A\"]\nglyphs_file = \"x.txt\"\n", "exactly one"},
		{"neither glyph form", "[[batch]]\nset = \"Latin\"\n", "exactly one"},
		{"missing glyphs file", "[[batch]]\nset = \"Latin\"\nglyphs_file = \"absent.txt\"\n", "absent.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlanFile(t, t.TempDir(), tt.content)
			_, _, err := loadPlan(path)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
