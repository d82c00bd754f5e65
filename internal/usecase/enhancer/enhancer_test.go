package enhancer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"poster-badger/internal/domain"
	"poster-badger/internal/usecase/enhancer/badge"
	"poster-badger/internal/usecase/enhancer/paint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

var posterBg = color.NRGBA{R: 10, G: 20, B: 60, A: 255}

type stubResolver struct {
	content map[domain.BadgeType]*domain.BadgeContent
	errs    map[domain.BadgeType]error
}

func (s *stubResolver) Resolve(_ context.Context, t domain.BadgeType) (*domain.BadgeContent, error) {
	if err, ok := s.errs[t]; ok {
		return nil, err
	}
	return s.content[t], nil
}

type stubStyles map[domain.BadgeType]domain.BadgeStyle

func (s stubStyles) StyleFor(t domain.BadgeType) (domain.BadgeStyle, bool) {
	style, ok := s[t]
	return style, ok
}

func newTestEnhancer(t *testing.T, assetDir string) *Enhancer {
	t.Helper()
	zlog.Init()
	r := badge.NewRenderer(paint.NewFontCache(""), badge.NewAssetCache(assetDir), &zlog.Logger)
	return NewEnhancer(r, 0, &zlog.Logger)
}

func writePoster(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, posterBg)
		}
	}
	path := filepath.Join(t.TempDir(), "poster.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func decodeOutput(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img
}

// changedPixels counts pixels inside region that moved noticeably away from
// the flat poster background, with tolerance for JPEG quantization.
func changedPixels(img image.Image, region image.Rectangle) int {
	n := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			dr := abs32(r>>8, uint32(posterBg.R))
			dg := abs32(g>>8, uint32(posterBg.G))
			db := abs32(b>>8, uint32(posterBg.B))
			if dr+dg+db > 60 {
				n++
			}
		}
	}
	return n
}

func abs32(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func textOnlyStyle(t domain.BadgeType) domain.BadgeStyle {
	s := domain.DefaultStyle(t)
	s.Image.Enabled = false
	return s
}

func TestComposeAudioTextBadgeTopRight(t *testing.T) {
	e := newTestEnhancer(t, "")
	posterPath := writePoster(t, 1000, 1500)
	outPath := posterPath + ".out.jpg"

	resolver := &stubResolver{content: map[domain.BadgeType]*domain.BadgeContent{
		domain.BadgeAudio: domain.TextContent("DTS-X"),
	}}
	styles := stubStyles{domain.BadgeAudio: textOnlyStyle(domain.BadgeAudio)}

	outcome, err := e.Compose(context.Background(), posterPath, []domain.BadgeType{domain.BadgeAudio}, resolver, styles, outPath)
	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, domain.BadgeApplied, outcome.Results[0].Status)
	assert.Equal(t, 1, outcome.AppliedCount())

	out := decodeOutput(t, outPath)
	assert.Equal(t, 1000, out.Bounds().Dx())
	assert.Equal(t, 1500, out.Bounds().Dy())

	// Badge pixels land in the top right area; the rest of the poster stays
	// the background color.
	assert.Greater(t, changedPixels(out, image.Rect(700, 0, 1000, 300)), 0)
	assert.Equal(t, 0, changedPixels(out, image.Rect(0, 1200, 300, 1500)))
}

func TestComposeReviewStack(t *testing.T) {
	e := newTestEnhancer(t, "")
	posterPath := writePoster(t, 1000, 1500)
	outPath := posterPath + ".out.jpg"

	resolver := &stubResolver{content: map[domain.BadgeType]*domain.BadgeContent{
		domain.BadgeReview: domain.ReviewContent([]domain.ReviewItem{
			{Source: "IMDb", Percent: "81%", ImageKey: "imdb"},
			{Source: "Rotten Tomatoes", Percent: "94%", ImageKey: "rt"},
			{Source: "Metacritic", Percent: "77%", ImageKey: "metacritic"},
		}),
	}}

	outcome, err := e.Compose(context.Background(), posterPath, []domain.BadgeType{domain.BadgeReview}, resolver, nil, outPath)
	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, domain.BadgeApplied, outcome.Results[0].Status)

	// Review badges stack bottom left by default. Three 100px badges plus
	// spacing cover well over 300 vertical pixels there.
	out := decodeOutput(t, outPath)
	assert.Greater(t, changedPixels(out, image.Rect(0, 1100, 200, 1500)), 100)
	assert.Equal(t, 0, changedPixels(out, image.Rect(700, 0, 1000, 300)))
}

func TestComposeAllSkippedCopiesOriginal(t *testing.T) {
	e := newTestEnhancer(t, "")
	posterPath := writePoster(t, 400, 600)
	outPath := posterPath + ".out.jpg"

	resolver := &stubResolver{} // every type resolves to nil content

	types := []domain.BadgeType{domain.BadgeAudio, domain.BadgeResolution}
	outcome, err := e.Compose(context.Background(), posterPath, types, resolver, nil, outPath)
	require.NoError(t, err)
	require.Len(t, outcome.Results, 2)
	for _, res := range outcome.Results {
		assert.Equal(t, domain.BadgeSkipped, res.Status)
	}
	assert.Equal(t, 0, outcome.AppliedCount())

	original, err := os.ReadFile(posterPath)
	require.NoError(t, err)
	copied, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, original, copied)
}

func TestComposeImageMissFallsBackToText(t *testing.T) {
	e := newTestEnhancer(t, t.TempDir())
	posterPath := writePoster(t, 1000, 1500)
	outPath := posterPath + ".out.jpg"

	resolver := &stubResolver{content: map[domain.BadgeType]*domain.BadgeContent{
		domain.BadgeAudio: domain.TextContent("DTS-X"),
	}}

	style := domain.DefaultStyle(domain.BadgeAudio)
	style.Image.Enabled = true
	style.Image.FallbackToText = true
	styles := stubStyles{domain.BadgeAudio: style}

	outcome, err := e.Compose(context.Background(), posterPath, []domain.BadgeType{domain.BadgeAudio}, resolver, styles, outPath)
	require.NoError(t, err)
	assert.Equal(t, domain.BadgeApplied, outcome.Results[0].Status)

	out := decodeOutput(t, outPath)
	assert.Greater(t, changedPixels(out, image.Rect(700, 0, 1000, 300)), 0)
}

func TestComposeImageMissWithoutFallbackFails(t *testing.T) {
	e := newTestEnhancer(t, t.TempDir())
	posterPath := writePoster(t, 1000, 1500)
	outPath := posterPath + ".out.jpg"

	resolver := &stubResolver{content: map[domain.BadgeType]*domain.BadgeContent{
		domain.BadgeAwards: domain.ImageContent("oscars"),
	}}

	outcome, err := e.Compose(context.Background(), posterPath, []domain.BadgeType{domain.BadgeAwards}, resolver, nil, outPath)
	require.NoError(t, err)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, domain.BadgeFailed, outcome.Results[0].Status)
	assert.Contains(t, outcome.Results[0].Error, ErrNoAssetMatched.Error())

	// Nothing applied, so the original is passed through untouched.
	original, err := os.ReadFile(posterPath)
	require.NoError(t, err)
	copied, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, original, copied)
}

func TestComposeBadgeFailureDoesNotAbort(t *testing.T) {
	e := newTestEnhancer(t, "")
	posterPath := writePoster(t, 1000, 1500)
	outPath := posterPath + ".out.jpg"

	resolver := &stubResolver{
		content: map[domain.BadgeType]*domain.BadgeContent{
			domain.BadgeResolution: domain.TextContent("4K"),
		},
		errs: map[domain.BadgeType]error{
			domain.BadgeAudio: errors.New("metadata source unavailable"),
		},
	}
	styles := stubStyles{domain.BadgeResolution: textOnlyStyle(domain.BadgeResolution)}

	types := []domain.BadgeType{domain.BadgeAudio, domain.BadgeResolution}
	outcome, err := e.Compose(context.Background(), posterPath, types, resolver, styles, outPath)
	require.NoError(t, err)
	require.Len(t, outcome.Results, 2)

	assert.Equal(t, domain.BadgeAudio, outcome.Results[0].Type)
	assert.Equal(t, domain.BadgeFailed, outcome.Results[0].Status)
	assert.Equal(t, "metadata source unavailable", outcome.Results[0].Error)

	assert.Equal(t, domain.BadgeResolution, outcome.Results[1].Type)
	assert.Equal(t, domain.BadgeApplied, outcome.Results[1].Status)

	// The resolution badge lands top left.
	out := decodeOutput(t, outPath)
	assert.Greater(t, changedPixels(out, image.Rect(0, 0, 300, 300)), 0)
}

func TestComposeEmptyListCopiesOriginal(t *testing.T) {
	e := newTestEnhancer(t, "")
	posterPath := writePoster(t, 400, 600)
	outPath := posterPath + ".out.jpg"

	outcome, err := e.Compose(context.Background(), posterPath, nil, &stubResolver{}, nil, outPath)
	require.NoError(t, err)
	assert.Empty(t, outcome.Results)
	assert.Equal(t, 0, outcome.AppliedCount())

	original, err := os.ReadFile(posterPath)
	require.NoError(t, err)
	copied, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, original, copied)
}

func TestComposeUnreadablePoster(t *testing.T) {
	e := newTestEnhancer(t, "")
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := e.Compose(context.Background(), path, []domain.BadgeType{domain.BadgeAudio}, &stubResolver{}, nil, path+".out.jpg")
	assert.ErrorIs(t, err, ErrPosterUnreadable)
}
