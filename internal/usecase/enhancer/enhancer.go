// Package enhancer is the badge composition pipeline: it turns an ordered
// badge type list into styled rasters and composites them onto a poster with
// deterministic, aspect-ratio-aware placement.
package enhancer

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"

	"poster-badger/internal/domain"
	"poster-badger/internal/usecase/enhancer/badge"
	"poster-badger/internal/usecase/enhancer/layout"

	"github.com/wb-go/wbf/zlog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Enhancer struct {
	renderer *badge.Renderer
	logger   *zlog.Zerolog
	quality  int
}

func NewEnhancer(renderer *badge.Renderer, quality int, logger *zlog.Zerolog) *Enhancer {
	if quality <= 0 || quality > 100 {
		quality = domain.DefaultJPEGQuality
	}
	return &Enhancer{
		renderer: renderer,
		logger:   logger,
		quality:  quality,
	}
}

// Compose runs the pipeline for one poster. Badge types are processed in
// order; each composites onto the output of the previous one. A single badge
// type failing never aborts the poster: its attempt is recorded and the loop
// continues on the untouched canvas. Only an unreadable poster is a hard
// error. When zero badges end up applied, including an empty badge type
// list, the original file is copied byte-for-byte so an untouched poster
// keeps its original encoding.
func (e *Enhancer) Compose(ctx context.Context, posterPath string, badgeTypes []domain.BadgeType, resolver ContentResolver, styles StyleLookup, outPath string) (*domain.CompositionOutcome, error) {
	if len(badgeTypes) == 0 {
		outcome := &domain.CompositionOutcome{OutputPath: outPath}
		if err := copyFile(posterPath, outPath); err != nil {
			return nil, fmt.Errorf("failed to copy unmodified poster: %w", err)
		}
		e.logger.Info().Str("output", outPath).Msg("No badge types requested, original copied unmodified")
		return outcome, nil
	}

	poster, err := loadRGBA(posterPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPosterUnreadable, err)
	}

	outcome := &domain.CompositionOutcome{OutputPath: outPath}
	posterW := poster.Bounds().Dx()
	posterH := poster.Bounds().Dy()

	for _, t := range badgeTypes {
		content, err := resolver.Resolve(ctx, t)
		if err != nil {
			e.logger.Error().Err(err).Str("badge_type", string(t)).Msg("Content resolution failed")
			outcome.Record(t, domain.BadgeFailed, err.Error())
			continue
		}
		if content == nil {
			e.logger.Debug().Str("badge_type", string(t)).Msg("No content for badge type, skipping")
			outcome.Record(t, domain.BadgeSkipped, "")
			continue
		}

		style := e.styleFor(t, styles)

		if err := e.applyBadge(poster, posterW, posterH, t, content, style); err != nil {
			e.logger.Error().Err(err).Str("badge_type", string(t)).Msg("Badge failed")
			outcome.Record(t, domain.BadgeFailed, err.Error())
			continue
		}

		outcome.Record(t, domain.BadgeApplied, "")
	}

	if outcome.AppliedCount() == 0 {
		if err := copyFile(posterPath, outPath); err != nil {
			return nil, fmt.Errorf("failed to copy unmodified poster: %w", err)
		}
		e.logger.Info().Str("output", outPath).Msg("No badges applied, original copied unmodified")
		return outcome, nil
	}

	if err := saveJPEG(poster, outPath, e.quality); err != nil {
		return nil, fmt.Errorf("failed to save enhanced poster: %w", err)
	}

	e.logger.Info().
		Str("output", outPath).
		Int("applied", outcome.AppliedCount()).
		Int("requested", len(badgeTypes)).
		Msg("Poster enhanced")

	return outcome, nil
}

// applyBadge renders the content for one badge type fully off-canvas, then
// composites it. Rendering before compositing is what keeps a failed attempt
// from leaving partial pixels on the poster.
func (e *Enhancer) applyBadge(poster *image.RGBA, posterW, posterH int, t domain.BadgeType, content *domain.BadgeContent, style domain.BadgeStyle) error {
	if content.Kind == domain.ContentReview {
		return e.applyReviewStack(poster, posterW, posterH, content.Reviews, style)
	}

	rendered, err := e.renderSingle(content, style)
	if err != nil {
		return err
	}

	padding := layout.LegacyPadding(posterW, posterH, style.General.EdgePadding)
	pos := layout.PlaceSingle(posterW, posterH, rendered.Width, rendered.Height, style.General.Position, padding)
	composite(poster, rendered, pos)
	return nil
}

func (e *Enhancer) renderSingle(content *domain.BadgeContent, style domain.BadgeStyle) (*domain.RenderedBadge, error) {
	key := content.Text
	if content.Kind == domain.ContentImage {
		key = content.ImageKey
	}

	if style.Image.Enabled {
		rendered, err := e.renderer.RenderImage(key, style)
		if err != nil {
			return nil, err
		}
		if rendered != nil {
			return rendered, nil
		}
		if !style.Image.FallbackToText {
			return nil, ErrNoAssetMatched
		}
		// The display key doubles as the badge text on fallback.
	}

	return e.renderer.RenderText(key, style)
}

// applyReviewStack renders one raster per review source and lays them out
// with the multi-badge packer. All rasters render before any compositing so
// a failure mid-stack leaves the canvas untouched.
func (e *Enhancer) applyReviewStack(poster *image.RGBA, posterW, posterH int, items []domain.ReviewItem, style domain.BadgeStyle) error {
	if len(items) == 0 {
		return fmt.Errorf("review content with no items")
	}

	rendered := make([]*domain.RenderedBadge, 0, len(items))
	sizes := make([]image.Point, 0, len(items))
	for _, item := range items {
		b, err := e.renderer.RenderReview(item.ImageKey, item.Percent, style)
		if err != nil {
			return fmt.Errorf("failed to render review badge %s: %w", item.Source, err)
		}
		rendered = append(rendered, b)
		sizes = append(sizes, image.Point{X: b.Width, Y: b.Height})
	}

	positions := layout.PlaceMulti(posterW, posterH, sizes, style)
	for i, b := range rendered {
		composite(poster, b, positions[i])
	}
	return nil
}

func (e *Enhancer) styleFor(t domain.BadgeType, styles StyleLookup) domain.BadgeStyle {
	if styles != nil {
		if s, ok := styles.StyleFor(t); ok {
			return s
		}
	}
	e.logger.Debug().Str("badge_type", string(t)).Msg("No persisted style, using default")
	return domain.DefaultStyle(t)
}

func composite(poster *image.RGBA, b *domain.RenderedBadge, at image.Point) {
	target := image.Rect(at.X, at.Y, at.X+b.Width, at.Y+b.Height)
	draw.Draw(poster, target, b.Img, image.Point{}, draw.Over)
}

func loadRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

func saveJPEG(img image.Image, path string, quality int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, img, &jpeg.Options{Quality: quality})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
