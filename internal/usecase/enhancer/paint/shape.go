package paint

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ClampRadius bounds a corner radius at draw time. Configured values are never
// trusted: anything beyond a quarter of the short side produces corner
// artifacts, so the radius is clamped there.
func ClampRadius(radius, w, h int) int {
	if radius < 0 {
		return 0
	}
	limit := min(w, h) / 4
	if radius > limit {
		return limit
	}
	return radius
}

// FillRoundedRect fills a rounded rectangle into dst, replacing pixels. The
// shape is built from two filling rectangles plus four quarter-disc corners;
// radius 0 degenerates to a plain rectangle.
func FillRoundedRect(dst *image.RGBA, r image.Rectangle, radius int, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	radius = ClampRadius(radius, r.Dx(), r.Dy())
	if radius == 0 {
		fillRect(dst, r, c)
		return
	}

	// Vertical band between the left and right corner columns, full height.
	fillRect(dst, image.Rect(r.Min.X+radius, r.Min.Y, r.Max.X-radius, r.Max.Y), c)
	// Side bands between the top and bottom corner rows.
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+radius, r.Min.X+radius, r.Max.Y-radius), c)
	fillRect(dst, image.Rect(r.Max.X-radius, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), c)

	fillCorner(dst, r.Min.X+radius-1, r.Min.Y+radius-1, radius, -1, -1, c)
	fillCorner(dst, r.Max.X-radius, r.Min.Y+radius-1, radius, 1, -1, c)
	fillCorner(dst, r.Min.X+radius-1, r.Max.Y-radius, radius, -1, 1, c)
	fillCorner(dst, r.Max.X-radius, r.Max.Y-radius, radius, 1, 1, c)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, c)
		}
	}
}

// fillCorner draws one quarter disc. (cx, cy) is the pixel at the disc center
// and (sx, sy) selects which quadrant extends outward from it.
func fillCorner(dst *image.RGBA, cx, cy, radius, sx, sy int, c color.Color) {
	rr := radius * radius
	for dy := 0; dy < radius; dy++ {
		for dx := 0; dx < radius; dx++ {
			if dx*dx+dy*dy <= rr {
				dst.Set(cx+sx*dx, cy+sy*dy, c)
			}
		}
	}
}

// RoundedRectLayer builds a standalone badge background layer: a rounded
// rectangle of size w by h with an inset border stroke of the same shape.
// Border width 0 yields a plain background fill.
func RoundedRectLayer(w, h, radius, borderWidth int, bg, border color.NRGBA) *image.RGBA {
	layer := image.NewRGBA(image.Rect(0, 0, w, h))

	radius = ClampRadius(radius, w, h)
	if borderWidth < 0 {
		borderWidth = 0
	}
	if bw := min(w, h) / 2; borderWidth > bw {
		borderWidth = bw
	}

	if borderWidth > 0 {
		FillRoundedRect(layer, layer.Bounds(), radius, border)
		inner := image.Rect(borderWidth, borderWidth, w-borderWidth, h-borderWidth)
		innerRadius := radius - borderWidth
		if innerRadius < 0 {
			innerRadius = 0
		}
		FillRoundedRect(layer, inner, innerRadius, bg)
	} else {
		FillRoundedRect(layer, layer.Bounds(), radius, bg)
	}

	return layer
}

// ShadowLayer synthesizes a drop shadow for shape: its silhouette tinted with
// the shadow color and Gaussian-blurred. The caller is responsible for sizing
// the destination canvas so the blurred spill fits.
func ShadowLayer(shape *image.RGBA, blur int, shadow color.NRGBA) image.Image {
	b := shape.Bounds()
	silhouette := image.NewNRGBA(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := shape.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			c := shadow
			c.A = uint8(uint32(shadow.A) * (a >> 8) / 255)
			silhouette.SetNRGBA(x, y, c)
		}
	}

	if blur <= 0 {
		return silhouette
	}
	return imaging.Blur(silhouette, float64(blur))
}
