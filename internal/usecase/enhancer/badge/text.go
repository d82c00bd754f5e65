package badge

import (
	"fmt"
	"image"

	"poster-badger/internal/domain"
	"poster-badger/internal/usecase/enhancer/paint"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// RenderText renders a text badge. With dynamic sizing the canvas hugs the
// measured text plus padding, never below 30px per side; otherwise the
// configured base size is used as a square.
func (r *Renderer) RenderText(text string, style domain.BadgeStyle) (*domain.RenderedBadge, error) {
	if text == "" {
		return nil, fmt.Errorf("empty badge text")
	}

	face := r.fonts.Face(style.Text.Font, style.Text.FallbackFont, style.Text.Size)
	textW, textH := paint.MeasureText(face, text)

	var w, h int
	if style.General.DynamicSizing {
		w = max(textW+2*style.General.TextPadding, domain.DefaultMinBadgeSide)
		h = max(textH+2*style.General.TextPadding, domain.DefaultMinBadgeSide)
	} else {
		w, h = style.General.BaseSize, style.General.BaseSize
	}

	canvas, shape := r.styledCanvas(w, h, style)
	r.drawTextCentered(canvas, shape, face, text, style, false)

	return toBadge(canvas), nil
}

// drawTextCentered centers the exact glyph bounding box of text inside rect.
// With outline set, a one pixel semi-transparent outline is drawn under the
// main fill for legibility against arbitrary backgrounds.
func (r *Renderer) drawTextCentered(dst *image.RGBA, rect image.Rectangle, face font.Face, text string, style domain.BadgeStyle, outline bool) {
	bounds, _ := font.BoundString(face, text)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	dotX := rect.Min.X + (rect.Dx()-textW)/2 - bounds.Min.X.Floor()
	dotY := rect.Min.Y + (rect.Dy()-textH)/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  dst,
		Face: face,
	}

	if outline {
		d.Src = image.NewUniform(textOutlineColor)
		for _, off := range outlineOffsets {
			d.Dot = fixed.P(dotX+off.X, dotY+off.Y)
			d.DrawString(text)
		}
	}

	d.Src = image.NewUniform(paint.HexToNRGBA(style.Text.Color, 100))
	d.Dot = fixed.P(dotX, dotY)
	d.DrawString(text)
}

var outlineOffsets = []image.Point{
	{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1},
	{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1},
}
