package paint

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexToNRGBA(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		opacity int
		want    color.NRGBA
	}{
		{
			name:    "six digit",
			hex:     "#1A2B3C",
			opacity: 100,
			want:    color.NRGBA{R: 0x1A, G: 0x2B, B: 0x3C, A: 255},
		},
		{
			name:    "three digit expands",
			hex:     "#F0A",
			opacity: 100,
			want:    color.NRGBA{R: 0xFF, G: 0x00, B: 0xAA, A: 255},
		},
		{
			name:    "no hash prefix",
			hex:     "FFFFFF",
			opacity: 100,
			want:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		},
		{
			name:    "stray quotes stripped",
			hex:     `"#00FF00"`,
			opacity: 100,
			want:    color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		},
		{
			name:    "stray backticks stripped",
			hex:     "`#0000FF`",
			opacity: 100,
			want:    color.NRGBA{R: 0, G: 0, B: 255, A: 255},
		},
		{
			name:    "malformed falls back to red",
			hex:     "not-a-color",
			opacity: 50,
			want:    color.NRGBA{R: 255, G: 0, B: 0, A: 127},
		},
		{
			name:    "empty falls back to red",
			hex:     "",
			opacity: 100,
			want:    color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		},
		{
			name:    "opacity scales alpha",
			hex:     "#000000",
			opacity: 40,
			want:    color.NRGBA{R: 0, G: 0, B: 0, A: 102},
		},
		{
			name:    "opacity clamped above 100",
			hex:     "#000000",
			opacity: 250,
			want:    color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		},
		{
			name:    "negative opacity clamped to zero",
			hex:     "#000000",
			opacity: -5,
			want:    color.NRGBA{R: 0, G: 0, B: 0, A: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HexToNRGBA(tt.hex, tt.opacity))
		})
	}
}
