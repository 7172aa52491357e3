package surface

import (
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// ParseColor parses a hex color such as "#ccc" or "#ff000080". Empty strings,
// "none" and "transparent" yield no color.
func ParseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "none", "transparent", "false":
		return nil, false
	}
	return gg.Hex(s).Color(), true
}

// WithOpacity scales the alpha of c by opacity in [0,1]
func WithOpacity(c color.Color, opacity float64) color.Color {
	if c == nil {
		return nil
	}
	opacity = math.Max(0, math.Min(1, opacity))
	rgba := gg.FromColor(c)
	rgba.A *= opacity
	return rgba.Color()
}

// MustColor parses a color and falls back to def when it is empty
func MustColor(s string, def color.Color) color.Color {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}
