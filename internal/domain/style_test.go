package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultStylePerType(t *testing.T) {
	audio := DefaultStyle(BadgeAudio)
	assert.Equal(t, AnchorTopRight, audio.General.Position)
	assert.True(t, audio.General.DynamicSizing)
	assert.True(t, audio.Image.FallbackToText)

	resolution := DefaultStyle(BadgeResolution)
	assert.Equal(t, AnchorTopLeft, resolution.General.Position)

	awards := DefaultStyle(BadgeAwards)
	assert.Equal(t, AnchorBottomRightFlush, awards.General.Position)
	assert.Equal(t, 0, awards.Background.Opacity)
	assert.Equal(t, 0, awards.Border.Width)
	assert.False(t, awards.Image.FallbackToText)

	review := DefaultStyle(BadgeReview)
	assert.Equal(t, AnchorBottomLeft, review.General.Position)
	assert.False(t, review.General.DynamicSizing)
	assert.Equal(t, float64(60), review.Text.Size)
}

func TestStyleFromSettingsKebabAndSnake(t *testing.T) {
	kebab := StyleFromSettings(BadgeAudio, map[string]interface{}{
		"general-badge-size": 140,
		"use-dynamic-sizing": false,
		"border-radius":      4,
	})
	snake := StyleFromSettings(BadgeAudio, map[string]interface{}{
		"general_badge_size": 140,
		"use_dynamic_sizing": false,
		"border_radius":      4,
	})

	assert.Equal(t, kebab, snake)
	assert.Equal(t, 140, kebab.General.BaseSize)
	assert.False(t, kebab.General.DynamicSizing)
	assert.Equal(t, 4, kebab.Border.Radius)
}

func TestStyleFromSettingsCoercion(t *testing.T) {
	s := StyleFromSettings(BadgeAudio, map[string]interface{}{
		"general_badge_size": "120",
		"shadow_enable":      "true",
		"text_size":          float64(55),
		"background_opacity": 80,
	})

	assert.Equal(t, 120, s.General.BaseSize)
	assert.True(t, s.Shadow.Enabled)
	assert.Equal(t, float64(55), s.Text.Size)
	assert.Equal(t, 80, s.Background.Opacity)
}

func TestStyleFromSettingsMalformedValuesKeepDefaults(t *testing.T) {
	def := DefaultStyle(BadgeAudio)
	s := StyleFromSettings(BadgeAudio, map[string]interface{}{
		"general_badge_size":     "not a number",
		"shadow_enable":          "definitely",
		"text_size":              -5,
		"general_badge_position": 42,
		"badge_orientation":      "diagonal",
	})

	assert.Equal(t, def.General.BaseSize, s.General.BaseSize)
	assert.Equal(t, def.Shadow.Enabled, s.Shadow.Enabled)
	assert.Equal(t, def.Text.Size, s.Text.Size)
	assert.Equal(t, def.General.Position, s.General.Position)
	assert.Equal(t, def.General.Orientation, s.General.Orientation)
}

func TestStyleFromSettingsImageMapping(t *testing.T) {
	s := StyleFromSettings(BadgeAudio, map[string]interface{}{
		"image-mapping": map[string]interface{}{"DTS-X": "dtsx.png"},
	})

	assert.Equal(t, map[string]string{"DTS-X": "dtsx.png"}, s.Image.Mapping)
}

func TestStyleFromSettingsEmpty(t *testing.T) {
	assert.Equal(t, DefaultStyle(BadgeReview), StyleFromSettings(BadgeReview, nil))
}
