package ufo

import (
	"encoding/xml"
	"fmt"
	maps "golang.org/x/exp/maps"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Lib is a property-list dictionary attached to a font or a glyph.
// Values are strings, integers (int64), reals (float64), or booleans.
type Lib map[string]any

// String returns the string value for key, or "" if the key is absent
// or not a string.
func (l Lib) String(key string) string {
	s, _ := l[key].(string)
	return s
}

// Dict returns the nested dictionary for key, or nil.
// Both Lib and the map type produced by generic plist decoding are
// accepted.
func (l Lib) Dict(key string) map[string]any {
	switch v := l[key].(type) {
	case Lib:
		return v
	case map[string]any:
		return v
	}
	return nil
}

// Strings returns the array of strings for key, or nil. Non-string
// elements are skipped.
func (l Lib) Strings(key string) []string {
	arr, ok := l[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a shallow copy of the dictionary. Nested dictionaries
// and arrays are shared; the glyph codec only ever replaces top-level
// entries.
func (l Lib) Clone() Lib {
	if l == nil {
		return nil
	}
	out := make(Lib, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// libDict embeds a Lib in GLIF XML as <lib><dict>...</dict></lib>.
type libDict struct {
	Lib Lib
}

func (d *libDict) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	d.Lib = Lib{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "dict" {
				return fmt.Errorf("lib: unexpected element <%s>", t.Name.Local)
			}
			if err := decodeDict(dec, d.Lib); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// decodeDict reads <key>/<value> pairs until the enclosing dict ends.
func decodeDict(dec *xml.Decoder, into Lib) error {
	var key string
	var haveKey bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "key" {
				text, err := elementText(dec)
				if err != nil {
					return err
				}
				key, haveKey = text, true
				continue
			}
			if !haveKey {
				return fmt.Errorf("lib: value element <%s> without preceding <key>", t.Name.Local)
			}
			value, err := decodeValue(dec, t)
			if err != nil {
				return fmt.Errorf("lib: key %q: %w", key, err)
			}
			into[key] = value
			haveKey = false
		case xml.EndElement:
			return nil
		}
	}
}

func decodeValue(dec *xml.Decoder, start xml.StartElement) (any, error) {
	switch start.Name.Local {
	case "string":
		return elementText(dec)
	case "integer":
		text, err := elementText(dec)
		if err != nil {
			return nil, err
		}
		return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	case "real":
		text, err := elementText(dec)
		if err != nil {
			return nil, err
		}
		return strconv.ParseFloat(strings.TrimSpace(text), 64)
	case "true":
		return true, dec.Skip()
	case "false":
		return false, dec.Skip()
	default:
		return nil, fmt.Errorf("unsupported value element <%s>", start.Name.Local)
	}
}

// elementText returns the character data up to the current element's end tag.
func elementText(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), nil
		case xml.StartElement:
			return "", fmt.Errorf("unexpected nested element <%s>", t.Name.Local)
		}
	}
}

func (d libDict) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	dictStart := xml.StartElement{Name: xml.Name{Local: "dict"}}
	if err := enc.EncodeToken(dictStart); err != nil {
		return err
	}
	keys := maps.Keys(d.Lib)
	slices.Sort(keys)
	for _, k := range keys {
		if err := encodeElementText(enc, "key", k); err != nil {
			return err
		}
		if err := encodeValue(enc, k, d.Lib[k]); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(dictStart.End()); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeValue(enc *xml.Encoder, key string, v any) error {
	switch value := v.(type) {
	case string:
		return encodeElementText(enc, "string", value)
	case int:
		return encodeElementText(enc, "integer", strconv.Itoa(value))
	case int64:
		return encodeElementText(enc, "integer", strconv.FormatInt(value, 10))
	case uint64:
		return encodeElementText(enc, "integer", strconv.FormatUint(value, 10))
	case float64:
		return encodeElementText(enc, "real", strconv.FormatFloat(value, 'f', -1, 64))
	case bool:
		name := "false"
		if value {
			name = "true"
		}
		empty := xml.StartElement{Name: xml.Name{Local: name}}
		if err := enc.EncodeToken(empty); err != nil {
			return err
		}
		return enc.EncodeToken(empty.End())
	default:
		return fmt.Errorf("lib: key %q: unsupported value type %T", key, v)
	}
}

func encodeElementText(enc *xml.Encoder, name, text string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}
