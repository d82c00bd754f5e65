package badge

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"poster-badger/internal/domain"
	"poster-badger/internal/usecase/enhancer/paint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func newTestRenderer(t *testing.T, assetDir string) *Renderer {
	t.Helper()
	zlog.Init()
	return NewRenderer(paint.NewFontCache(""), NewAssetCache(assetDir), &zlog.Logger)
}

func writeAsset(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 24, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRenderTextDynamicSizing(t *testing.T) {
	r := newTestRenderer(t, "")
	style := domain.DefaultStyle(domain.BadgeAudio)
	style.General.DynamicSizing = true
	style.General.TextPadding = 12
	style.Shadow.Enabled = false

	b, err := r.RenderText("DTS-X", style)
	require.NoError(t, err)
	require.NotNil(t, b)

	face := paint.NewFontCache("").Face(style.Text.Font, style.Text.FallbackFont, style.Text.Size)
	tw, th := paint.MeasureText(face, "DTS-X")

	assert.Equal(t, max(tw+24, domain.DefaultMinBadgeSide), b.Width)
	assert.Equal(t, max(th+24, domain.DefaultMinBadgeSide), b.Height)
}

func TestRenderTextMinimumSide(t *testing.T) {
	r := newTestRenderer(t, "")
	style := domain.DefaultStyle(domain.BadgeAudio)
	style.General.DynamicSizing = true
	style.General.TextPadding = 0
	style.Text.Size = 8
	style.Shadow.Enabled = false

	b, err := r.RenderText(".", style)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, b.Width, domain.DefaultMinBadgeSide)
	assert.GreaterOrEqual(t, b.Height, domain.DefaultMinBadgeSide)
}

func TestRenderTextFixedSize(t *testing.T) {
	r := newTestRenderer(t, "")
	style := domain.DefaultStyle(domain.BadgeAudio)
	style.General.DynamicSizing = false
	style.General.BaseSize = 100
	style.Shadow.Enabled = false

	b, err := r.RenderText("HD", style)
	require.NoError(t, err)

	assert.Equal(t, 100, b.Width)
	assert.Equal(t, 100, b.Height)
}

func TestRenderTextEmpty(t *testing.T) {
	r := newTestRenderer(t, "")
	_, err := r.RenderText("", domain.DefaultStyle(domain.BadgeAudio))
	assert.Error(t, err)
}

func TestRenderTextShadowGrowsCanvas(t *testing.T) {
	r := newTestRenderer(t, "")
	style := domain.DefaultStyle(domain.BadgeAudio)
	style.General.DynamicSizing = false
	style.General.BaseSize = 100
	style.Shadow.Enabled = false

	plain, err := r.RenderText("HD", style)
	require.NoError(t, err)

	style.Shadow.Enabled = true
	style.Shadow.Blur = 6
	style.Shadow.OffsetX = 3
	style.Shadow.OffsetY = 3

	shadowed, err := r.RenderText("HD", style)
	require.NoError(t, err)

	assert.Greater(t, shadowed.Width, plain.Width)
	assert.Greater(t, shadowed.Height, plain.Height)
}

func TestRenderImageNoAsset(t *testing.T) {
	dir := t.TempDir()
	r := newTestRenderer(t, dir)

	style := domain.DefaultStyle(domain.BadgeAudio)
	style.Image.Dir = dir

	b, err := r.RenderImage("DTS-X", style)
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestRenderImageExactMapping(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "dtsx-logo.png")
	r := newTestRenderer(t, dir)

	style := domain.DefaultStyle(domain.BadgeAudio)
	style.Image.Dir = dir
	style.Image.Mapping = map[string]string{"DTS-X": "dtsx-logo.png"}
	style.Shadow.Enabled = false

	b, err := r.RenderImage("DTS-X", style)
	require.NoError(t, err)
	require.NotNil(t, b)

	// Asset 24x16 is already inside the base box, so it keeps its size;
	// the canvas adds image padding and border on each side.
	inset := style.Image.Padding + style.Border.Width
	assert.Equal(t, 24+2*inset, b.Width)
	assert.Equal(t, 16+2*inset, b.Height)
}

func TestRenderImagePreservesAspect(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "wide.png")
	r := newTestRenderer(t, dir)

	style := domain.DefaultStyle(domain.BadgeAudio)
	style.Image.Dir = dir
	style.Image.Mapping = map[string]string{"wide": "wide.png"}
	style.Shadow.Enabled = false

	b, err := r.RenderImage("wide", style)
	require.NoError(t, err)

	// Never forced square: width vs height keeps the 24:16 proportion.
	inset := style.Image.Padding + style.Border.Width
	assert.NotEqual(t, b.Width, b.Height)
	assert.Equal(t, (b.Width-2*inset)*16, (b.Height-2*inset)*24)
}

func TestAssetResolveStrategies(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "IMDb.png")
	writeAsset(t, dir, "dts.png")
	writeAsset(t, dir, "truehd-atmos.png")

	cache := NewAssetCache(dir)

	tests := []struct {
		name    string
		key     string
		mapping map[string]string
		want    string
		ok      bool
	}{
		{
			name:    "exact mapping",
			key:     "TrueHD Atmos",
			mapping: map[string]string{"TrueHD Atmos": "truehd-atmos.png"},
			want:    "truehd-atmos.png",
			ok:      true,
		},
		{
			name: "longest substring mapping",
			key:  "DTS-HD Master Audio",
			mapping: map[string]string{
				"DTS":    "dts.png",
				"DTS-HD": "truehd-atmos.png",
			},
			want: "truehd-atmos.png",
			ok:   true,
		},
		{
			name: "case-insensitive filename",
			key:  "imdb",
			want: "IMDb.png",
			ok:   true,
		},
		{
			name: "prefix on leading token",
			key:  "DTS X",
			want: "dts.png",
			ok:   true,
		},
		{
			name: "nothing resolves",
			key:  "Vorbis",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := cache.Resolve(tt.key, tt.mapping, "")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, filepath.Base(path))
			}
		})
	}
}

func TestRenderReview(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "rt.png")
	r := newTestRenderer(t, dir)

	style := domain.DefaultStyle(domain.BadgeReview)
	style.Image.Dir = dir
	style.Shadow.Enabled = false

	b, err := r.RenderReview("rt", "94%", style)
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, style.General.BaseSize, b.Width)
	assert.Equal(t, style.General.BaseSize, b.Height)
}

func TestRenderReviewNoLogoFallsBackToTextOnly(t *testing.T) {
	r := newTestRenderer(t, t.TempDir())

	style := domain.DefaultStyle(domain.BadgeReview)
	style.Shadow.Enabled = false

	b, err := r.RenderReview("unknown-source", "81%", style)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, style.General.BaseSize, b.Width)
}
