package dotgrid

import (
	"image/color"
	"math"
	"regexp"
	"strconv"
)

var hexColor = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)

// ParseHex decodes "#RRGGBB" (leading '#' optional). Anything else decodes
// to opaque black.
func ParseHex(s string) color.RGBA {
	m := hexColor.FindStringSubmatch(s)
	if m == nil {
		return color.RGBA{A: 0xff}
	}
	ch := func(h string) uint8 {
		v, _ := strconv.ParseUint(h, 16, 8)
		return uint8(v)
	}
	return color.RGBA{R: ch(m[1]), G: ch(m[2]), B: ch(m[3]), A: 0xff}
}

// Lerp blends from a to b by t, rounding each channel to the nearest
// integer. t is clamped to [0,1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
