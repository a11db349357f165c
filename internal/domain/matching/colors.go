package matching

import (
	"math"
	"strings"

	"github.com/renaqiu/stylematch/internal/domain/closet"
)

// neutralNames covers the color families that pair with anything. Denim and
// navy behave as neutrals in practice even though their hues are saturated.
var neutralNames = map[string]bool{
	"black":    true,
	"white":    true,
	"grey":     true,
	"gray":     true,
	"charcoal": true,
	"cream":    true,
	"ivory":    true,
	"beige":    true,
	"tan":      true,
	"khaki":    true,
	"camel":    true,
	"navy":     true,
	"denim":    true,
}

func isNeutral(c closet.Color) bool {
	name := strings.ToLower(strings.TrimSpace(c.Name))
	if neutralNames[name] {
		return true
	}
	r, g, b, ok := parseHex(c.Hex)
	if !ok {
		return false
	}
	// Low saturation reads as neutral regardless of the name.
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	if maxC == 0 {
		return true
	}
	return (maxC-minC)/maxC < 0.15
}

// hueDegrees converts a hex color to its position on the color wheel.
// The second return is false for achromatic or unparseable colors.
func hueDegrees(c closet.Color) (float64, bool) {
	r, g, b, ok := parseHex(c.Hex)
	if !ok {
		return 0, false
	}
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC
	if delta == 0 {
		return 0, false
	}
	var hue float64
	switch maxC {
	case r:
		hue = math.Mod((g-b)/delta, 6)
	case g:
		hue = (b-r)/delta + 2
	default:
		hue = (r-g)/delta + 4
	}
	hue *= 60
	if hue < 0 {
		hue += 360
	}
	return hue, true
}

func parseHex(hex string) (r, g, b float64, ok bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	var parts [3]float64
	for i := 0; i < 3; i++ {
		v, valid := hexByte(h[i*2 : i*2+2])
		if !valid {
			return 0, 0, 0, false
		}
		parts[i] = float64(v) / 255
	}
	return parts[0], parts[1], parts[2], true
}

func hexByte(s string) (int, bool) {
	value := 0
	for i := 0; i < len(s); i++ {
		value *= 16
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			value += int(c - '0')
		case c >= 'a' && c <= 'f':
			value += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			value += int(c-'A') + 10
		default:
			return 0, false
		}
	}
	return value, true
}

// colorCompatibility compares the primary colors of the two items.
// Neutral-to-anything is fully compatible; otherwise compatibility falls
// off linearly with hue distance around the wheel.
func colorCompatibility(scanned, owned []closet.Color) float64 {
	if len(scanned) == 0 || len(owned) == 0 {
		return unknownSignalScore
	}
	a, b := scanned[0], owned[0]
	if isNeutral(a) || isNeutral(b) {
		return 1
	}
	hueA, okA := hueDegrees(a)
	hueB, okB := hueDegrees(b)
	if !okA || !okB {
		return unknownSignalScore
	}
	d := math.Abs(hueA - hueB)
	if d > 180 {
		d = 360 - d
	}
	return 1 - d/180
}
