package paint

import (
	"image/color"
	"strconv"
	"strings"
)

// defaultColor is what malformed hex input degrades to. Downstream tooling
// relies on the loud red default to make broken configuration visible, so it
// must not change.
var defaultColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// HexToNRGBA parses a 3- or 6-digit hex color with an opacity percentage in
// [0,100]. Stray quote and backtick characters (seen in hand-edited settings
// files) are stripped first. Malformed input yields opaque red at the given
// opacity; this function never fails.
func HexToNRGBA(hex string, opacity int) color.NRGBA {
	c := parseHex(hex)
	c.A = opacityAlpha(opacity)
	return c
}

func parseHex(hex string) color.NRGBA {
	s := strings.TrimSpace(hex)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimPrefix(s, "#")

	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return defaultColor
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return defaultColor
	}

	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

func opacityAlpha(opacity int) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 100 {
		opacity = 100
	}
	return uint8(255 * opacity / 100)
}
