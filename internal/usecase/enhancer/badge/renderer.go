// Package badge renders single badge rasters: text badges, image badges and
// the combined review badge, all sharing the same background, border and
// shadow styling.
package badge

import (
	"image"
	"image/color"
	"image/draw"

	"poster-badger/internal/domain"
	"poster-badger/internal/usecase/enhancer/paint"

	"github.com/wb-go/wbf/zlog"
)

// shadowColor is the tint used for synthesized drop shadows.
var shadowColor = color.NRGBA{A: 160}

// textOutlineColor is the semi-transparent outline drawn under review badge
// percentages to keep them readable on arbitrary backgrounds.
var textOutlineColor = color.NRGBA{A: 140}

type Renderer struct {
	fonts  *paint.FontCache
	assets *AssetCache
	logger *zlog.Zerolog
}

func NewRenderer(fonts *paint.FontCache, assets *AssetCache, logger *zlog.Zerolog) *Renderer {
	return &Renderer{
		fonts:  fonts,
		assets: assets,
		logger: logger,
	}
}

// styledCanvas builds the badge canvas for a shape of shapeW by shapeH:
// background fill, inset border, and, when enabled, a blurred drop shadow
// beneath the shape. It returns the canvas and the rectangle the shape
// occupies on it, which is where content gets drawn.
func (r *Renderer) styledCanvas(shapeW, shapeH int, style domain.BadgeStyle) (*image.RGBA, image.Rectangle) {
	bg := paint.HexToNRGBA(style.Background.Color, style.Background.Opacity)
	border := paint.HexToNRGBA(style.Border.Color, 100)

	shape := paint.RoundedRectLayer(shapeW, shapeH, style.Border.Radius, style.Border.Width, bg, border)

	if !style.Shadow.Enabled {
		return shape, shape.Bounds()
	}

	blur := style.Shadow.Blur
	if limit := min(shapeW, shapeH) / 2; blur > limit {
		blur = limit
	}
	if blur < 0 {
		blur = 0
	}
	dx, dy := style.Shadow.OffsetX, style.Shadow.OffsetY

	margin := blur * 2
	sx := margin + max(0, -dx)
	sy := margin + max(0, -dy)
	canvasW := shapeW + 2*margin + abs(dx)
	canvasH := shapeH + 2*margin + abs(dy)

	canvas := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))

	shadow := paint.ShadowLayer(shape, blur, shadowColor)
	shadowAt := image.Rect(sx+dx, sy+dy, sx+dx+shapeW, sy+dy+shapeH)
	draw.Draw(canvas, shadowAt, shadow, image.Point{}, draw.Over)

	shapeAt := image.Rect(sx, sy, sx+shapeW, sy+shapeH)
	draw.Draw(canvas, shapeAt, shape, image.Point{}, draw.Over)

	return canvas, shapeAt
}

func toBadge(canvas *image.RGBA) *domain.RenderedBadge {
	return &domain.RenderedBadge{
		Img:    canvas,
		Width:  canvas.Bounds().Dx(),
		Height: canvas.Bounds().Dy(),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
