package badge

import (
	"fmt"
	"image"
	"image/draw"

	"poster-badger/internal/domain"

	"github.com/disintegration/imaging"
)

// RenderImage renders an image badge for key. It returns (nil, nil) when no
// asset resolves; the caller decides between text fallback and failure based
// on the style's FallbackToText flag. The asset is scaled to fit the base
// size box preserving aspect ratio, never forced square.
func (r *Renderer) RenderImage(key string, style domain.BadgeStyle) (*domain.RenderedBadge, error) {
	path, ok := r.assets.Resolve(key, style.Image.Mapping, style.Image.Dir)
	if !ok {
		r.logger.Debug().Str("key", key).Msg("No badge asset matched")
		return nil, nil
	}

	asset, err := r.assets.load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load badge asset %s: %w", path, err)
	}

	base := style.General.BaseSize
	if base <= 0 {
		base = domain.DefaultMinBadgeSide
	}
	scaled := imaging.Fit(asset, base, base, imaging.Lanczos)

	inset := style.Image.Padding + style.Border.Width
	w := scaled.Bounds().Dx() + 2*inset
	h := scaled.Bounds().Dy() + 2*inset

	canvas, shape := r.styledCanvas(w, h, style)
	compositeCentered(canvas, shape, scaled)

	return toBadge(canvas), nil
}

func compositeCentered(dst *image.RGBA, rect image.Rectangle, src image.Image) {
	sb := src.Bounds()
	x := rect.Min.X + (rect.Dx()-sb.Dx())/2
	y := rect.Min.Y + (rect.Dy()-sb.Dy())/2
	target := image.Rect(x, y, x+sb.Dx(), y+sb.Dy())
	draw.Draw(dst, target, src, sb.Min, draw.Over)
}
