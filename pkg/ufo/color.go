package ufo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA display color as used by UFO color marks
// (the "public.markColor" glyph lib key). Channels are in [0, 1].
//
// Parsing rounds each channel to four decimal places, so parsing the
// output of [Color.String] is a fixed point. That keeps repeated
// export/import cycles equality-stable.
type Color struct {
	R, G, B, A float64
}

// ParseColor parses a "r,g,b,a" color string with decimal channels.
// Each channel must be in [0, 1]; channels are rounded to four decimal
// places so that ParseColor(c.String()) == c.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Color{}, fmt.Errorf("color %q: expected 4 comma-separated channels, got %d", s, len(parts))
	}
	var channels [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: channel %d: %w", s, i+1, err)
		}
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("color %q: channel %d out of range [0, 1]", s, i+1)
		}
		channels[i] = math.Round(v*10000) / 10000
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// String formats the color as "r,g,b,a" with minimal decimal digits.
func (c Color) String() string {
	return formatChannel(c.R) + "," + formatChannel(c.G) + "," + formatChannel(c.B) + "," + formatChannel(c.A)
}

func formatChannel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
