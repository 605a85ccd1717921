package garden

import "fmt"

// Category is a glyph's OpenType category, as recorded in the
// "public.openTypeCategories" font lib table and in glyph_data.csv.
type Category uint8

const (
	CategoryUnassigned Category = iota
	CategoryBase
	CategoryLigature
	CategoryMark
	CategoryComponent
)

var categoryNames = [...]string{
	CategoryUnassigned: "unassigned",
	CategoryBase:       "base",
	CategoryLigature:   "ligature",
	CategoryMark:       "mark",
	CategoryComponent:  "component",
}

// String returns the category's textual name.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory parses a textual category name. The empty string maps to
// [CategoryUnassigned]; anything else unrecognized is an error.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryUnassigned, nil
	}
	for c, name := range categoryNames {
		if s == name {
			return Category(c), nil
		}
	}
	return CategoryUnassigned, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// marshalCategory is the csv column form: unassigned stays blank so that
// tables written by other tools remain byte-comparable.
func (c Category) marshal() string {
	if c == CategoryUnassigned {
		return ""
	}
	return c.String()
}
