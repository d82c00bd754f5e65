// Package layout maps named anchors to pixel coordinates and packs badge
// stacks along an axis. All results are clamped into the poster bounds.
package layout

import (
	"image"

	"poster-badger/internal/domain"
)

// canonicalRatio is the 2:3 poster aspect ratio all padding scaling is
// measured against.
const canonicalRatio = 2.0 / 3.0

// aspectTolerance is how far the ratio may deviate before the wide/narrow
// multipliers kick in.
const aspectTolerance = 0.1

const (
	paddingMin = 15
	paddingMax = 60
)

// DynamicPadding scales base edge padding by the poster's deviation from the
// canonical 2:3 ratio: wider posters get x1.2, narrower x0.8. The result is
// clamped to [15, 60]. Used by the multi-badge family.
func DynamicPadding(posterW, posterH, base int) int {
	scaled := int(float64(base) * aspectMultiplier(posterW, posterH))
	return clamp(scaled, paddingMin, paddingMax)
}

// LegacyPadding is the single-badge variant of DynamicPadding with the
// original clamp bounds [max(10, base/3), base*2]. Both clamp formulas are
// load-bearing for existing visual output and are kept per call site.
func LegacyPadding(posterW, posterH, base int) int {
	scaled := int(float64(base) * aspectMultiplier(posterW, posterH))
	lo := max(10, base/3)
	hi := base * 2
	if hi < lo {
		hi = lo
	}
	return clamp(scaled, lo, hi)
}

func aspectMultiplier(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1.0
	}
	ratio := float64(w) / float64(h)
	switch {
	case ratio > canonicalRatio*(1+aspectTolerance):
		return 1.2
	case ratio < canonicalRatio*(1-aspectTolerance):
		return 0.8
	default:
		return 1.0
	}
}

// PlaceSingle maps an anchor to the top-left pixel offset for one badge.
// The flush variant ignores padding and sits exactly in the corner. The
// result is always clamped into [0, posterDim-badgeDim].
func PlaceSingle(posterW, posterH, badgeW, badgeH int, anchor domain.Anchor, padding int) image.Point {
	var x, y int

	switch anchor {
	case domain.AnchorTopLeft:
		x, y = padding, padding
	case domain.AnchorTopCenter:
		x, y = (posterW-badgeW)/2, padding
	case domain.AnchorTopRight:
		x, y = posterW-badgeW-padding, padding
	case domain.AnchorCenterLeft:
		x, y = padding, (posterH-badgeH)/2
	case domain.AnchorCenter:
		x, y = (posterW-badgeW)/2, (posterH-badgeH)/2
	case domain.AnchorCenterRight:
		x, y = posterW-badgeW-padding, (posterH-badgeH)/2
	case domain.AnchorBottomLeft:
		x, y = padding, posterH-badgeH-padding
	case domain.AnchorBottomCenter:
		x, y = (posterW-badgeW)/2, posterH-badgeH-padding
	case domain.AnchorBottomRight:
		x, y = posterW-badgeW-padding, posterH-badgeH-padding
	case domain.AnchorBottomRightFlush:
		x, y = posterW-badgeW, posterH-badgeH
	default:
		x, y = posterW-badgeW-padding, padding
	}

	return image.Point{
		X: clamp(x, 0, max(0, posterW-badgeW)),
		Y: clamp(y, 0, max(0, posterH-badgeH)),
	}
}

// PlaceMulti lays out N badges along the style's orientation starting from
// the anchor's edge, with fixed spacing between consecutive badges.
// Cross-axis alignment follows the anchor's horizontal or vertical component.
func PlaceMulti(posterW, posterH int, sizes []image.Point, style domain.BadgeStyle) []image.Point {
	if len(sizes) == 0 {
		return nil
	}

	padding := DynamicPadding(posterW, posterH, style.General.EdgePadding)
	spacing := style.General.Spacing
	anchor := style.General.Position

	blockW, blockH := blockExtent(sizes, spacing, style.General.Orientation)
	origin := PlaceSingle(posterW, posterH, blockW, blockH, anchor, padding)

	points := make([]image.Point, 0, len(sizes))
	if style.General.Orientation == domain.OrientationHorizontal {
		x := origin.X
		for _, size := range sizes {
			y := origin.Y + alignOffset(blockH, size.Y, vAlign(anchor))
			points = append(points, clampPoint(x, y, posterW, posterH, size))
			x += size.X + spacing
		}
		return points
	}

	y := origin.Y
	for _, size := range sizes {
		x := origin.X + alignOffset(blockW, size.X, hAlign(anchor))
		points = append(points, clampPoint(x, y, posterW, posterH, size))
		y += size.Y + spacing
	}
	return points
}

func blockExtent(sizes []image.Point, spacing int, orientation domain.Orientation) (int, int) {
	var mainSum, crossMax int
	for _, size := range sizes {
		if orientation == domain.OrientationHorizontal {
			mainSum += size.X
			crossMax = max(crossMax, size.Y)
		} else {
			mainSum += size.Y
			crossMax = max(crossMax, size.X)
		}
	}
	mainSum += spacing * (len(sizes) - 1)

	if orientation == domain.OrientationHorizontal {
		return mainSum, crossMax
	}
	return crossMax, mainSum
}

type align int

const (
	alignStart align = iota
	alignCenter
	alignEnd
)

func hAlign(anchor domain.Anchor) align {
	switch anchor {
	case domain.AnchorTopLeft, domain.AnchorCenterLeft, domain.AnchorBottomLeft:
		return alignStart
	case domain.AnchorTopRight, domain.AnchorCenterRight, domain.AnchorBottomRight, domain.AnchorBottomRightFlush:
		return alignEnd
	default:
		return alignCenter
	}
}

func vAlign(anchor domain.Anchor) align {
	switch anchor {
	case domain.AnchorTopLeft, domain.AnchorTopCenter, domain.AnchorTopRight:
		return alignStart
	case domain.AnchorBottomLeft, domain.AnchorBottomCenter, domain.AnchorBottomRight, domain.AnchorBottomRightFlush:
		return alignEnd
	default:
		return alignCenter
	}
}

func alignOffset(block, item int, a align) int {
	switch a {
	case alignCenter:
		return (block - item) / 2
	case alignEnd:
		return block - item
	default:
		return 0
	}
}

func clampPoint(x, y, posterW, posterH int, size image.Point) image.Point {
	return image.Point{
		X: clamp(x, 0, max(0, posterW-size.X)),
		Y: clamp(y, 0, max(0, posterH-size.Y)),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
