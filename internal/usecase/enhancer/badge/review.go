package badge

import (
	"image"
	"math"

	"poster-badger/internal/domain"

	"github.com/disintegration/imaging"
)

// logoFraction is how much of the badge's available vertical space the rating
// source logo occupies; the percentage text sits below it.
const logoFraction = 0.6

// RenderReview renders one review badge: the rating source logo stacked above
// the percentage text inside a single styled canvas. The text size scales
// with the configured base size so review stacks stay proportional across
// badge sizes.
func (r *Renderer) RenderReview(imageKey, percent string, style domain.BadgeStyle) (*domain.RenderedBadge, error) {
	base := style.General.BaseSize
	if base <= 0 {
		base = domain.DefaultMinBadgeSide
	}

	scale := math.Min(float64(base)/150.0, float64(base)/120.0)
	fontSize := style.Text.Size * scale
	if fontSize < 10 {
		fontSize = 10
	}
	face := r.fonts.Face(style.Text.Font, style.Text.FallbackFont, fontSize)

	pad := style.General.TextPadding
	inner := base - 2*pad
	if inner < domain.DefaultMinBadgeSide {
		inner = domain.DefaultMinBadgeSide
	}
	logoBox := int(float64(inner) * logoFraction)
	textBox := inner - logoBox

	canvas, shape := r.styledCanvas(base, base, style)

	logoRect := image.Rect(shape.Min.X+pad, shape.Min.Y+pad, shape.Max.X-pad, shape.Min.Y+pad+logoBox)
	textRect := image.Rect(shape.Min.X+pad, logoRect.Max.Y, shape.Max.X-pad, logoRect.Max.Y+textBox)

	if path, ok := r.assets.Resolve(imageKey, style.Image.Mapping, style.Image.Dir); ok {
		if logo, err := r.assets.load(path); err == nil {
			fit := imaging.Fit(logo, logoRect.Dx(), logoRect.Dy(), imaging.Lanczos)
			compositeCentered(canvas, logoRect, fit)
		} else {
			r.logger.Debug().Err(err).Str("key", imageKey).Msg("Failed to load review logo, rendering text only")
			textRect = image.Rect(shape.Min.X+pad, shape.Min.Y+pad, shape.Max.X-pad, shape.Max.Y-pad)
		}
	} else {
		r.logger.Debug().Str("key", imageKey).Msg("No review logo matched, rendering text only")
		textRect = image.Rect(shape.Min.X+pad, shape.Min.Y+pad, shape.Max.X-pad, shape.Max.Y-pad)
	}

	r.drawTextCentered(canvas, textRect, face, percent, style, true)

	return toBadge(canvas), nil
}
