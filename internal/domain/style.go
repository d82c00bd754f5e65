package domain

import (
	"strings"

	"github.com/spf13/cast"
)

// BadgeStyle is the full per-badge-type styling configuration. It is loaded
// once per composition and immutable for its duration.
type BadgeStyle struct {
	General    GeneralStyle
	Text       TextStyle
	Background BackgroundStyle
	Border     BorderStyle
	Shadow     ShadowStyle
	Image      ImageStyle
}

type GeneralStyle struct {
	BaseSize      int
	DynamicSizing bool
	TextPadding   int
	EdgePadding   int
	Position      Anchor
	Spacing       int
	Orientation   Orientation
}

type TextStyle struct {
	Font         string
	FallbackFont string
	Size         float64
	Color        string
}

type BackgroundStyle struct {
	Color   string
	Opacity int
}

type BorderStyle struct {
	Color  string
	Width  int
	Radius int
}

type ShadowStyle struct {
	Enabled bool
	Blur    int
	OffsetX int
	OffsetY int
}

type ImageStyle struct {
	Enabled        bool
	Dir            string
	Mapping        map[string]string
	FallbackToText bool
	Padding        int
}

// DefaultStyle returns the built-in style for a badge type, used whenever the
// external style lookup has nothing persisted.
func DefaultStyle(t BadgeType) BadgeStyle {
	s := BadgeStyle{
		General: GeneralStyle{
			BaseSize:      100,
			DynamicSizing: true,
			TextPadding:   12,
			EdgePadding:   30,
			Position:      AnchorTopRight,
			Spacing:       10,
			Orientation:   OrientationVertical,
		},
		Text: TextStyle{
			Font:         "AvenirNextLTProBold.ttf",
			FallbackFont: "DejaVuSans.ttf",
			Size:         40,
			Color:        "#FFFFFF",
		},
		Background: BackgroundStyle{Color: "#000000", Opacity: 40},
		Border:     BorderStyle{Color: "#000000", Width: 1, Radius: 10},
		Shadow:     ShadowStyle{Enabled: false, Blur: 8, OffsetX: 2, OffsetY: 2},
		Image:      ImageStyle{Enabled: true, FallbackToText: true, Padding: 15},
	}

	switch t {
	case BadgeResolution:
		s.General.Position = AnchorTopLeft
	case BadgeAwards:
		s.General.Position = AnchorBottomRightFlush
		s.Background.Opacity = 0
		s.Border.Width = 0
		s.Image.FallbackToText = false
	case BadgeReview:
		s.General.Position = AnchorBottomLeft
		s.General.BaseSize = 100
		s.General.DynamicSizing = false
		s.Text.Size = 60
	}

	return s
}

// StyleFromSettings builds a style for one badge type from a raw settings map.
// Keys are accepted in both kebab-case and snake_case; values are coerced
// tolerantly, with any malformed value keeping its built-in default. This is
// the single normalization point for the mixed key schema seen in persisted
// configuration.
func StyleFromSettings(t BadgeType, settings map[string]interface{}) BadgeStyle {
	s := DefaultStyle(t)
	if len(settings) == 0 {
		return s
	}

	norm := make(map[string]interface{}, len(settings))
	for k, v := range settings {
		norm[strings.ReplaceAll(strings.ToLower(k), "-", "_")] = v
	}

	setInt(norm, "general_badge_size", &s.General.BaseSize)
	setBool(norm, "use_dynamic_sizing", &s.General.DynamicSizing)
	setInt(norm, "general_text_padding", &s.General.TextPadding)
	setInt(norm, "general_edge_padding", &s.General.EdgePadding)
	setInt(norm, "badge_spacing", &s.General.Spacing)
	if v, ok := norm["general_badge_position"]; ok {
		if p := Anchor(cast.ToString(v)); validAnchor(p) {
			s.General.Position = p
		}
	}
	if v, ok := norm["badge_orientation"]; ok {
		if o := Orientation(cast.ToString(v)); o == OrientationHorizontal || o == OrientationVertical {
			s.General.Orientation = o
		}
	}

	setString(norm, "font", &s.Text.Font)
	setString(norm, "fallback_font", &s.Text.FallbackFont)
	setFloat(norm, "text_size", &s.Text.Size)
	setString(norm, "text_color", &s.Text.Color)

	setString(norm, "background_color", &s.Background.Color)
	setInt(norm, "background_opacity", &s.Background.Opacity)

	setString(norm, "border_color", &s.Border.Color)
	setInt(norm, "border_width", &s.Border.Width)
	setInt(norm, "border_radius", &s.Border.Radius)

	setBool(norm, "shadow_enable", &s.Shadow.Enabled)
	setInt(norm, "shadow_blur", &s.Shadow.Blur)
	setInt(norm, "shadow_offset_x", &s.Shadow.OffsetX)
	setInt(norm, "shadow_offset_y", &s.Shadow.OffsetY)

	setBool(norm, "use_image_badges", &s.Image.Enabled)
	setString(norm, "image_directory", &s.Image.Dir)
	setBool(norm, "fallback_to_text", &s.Image.FallbackToText)
	setInt(norm, "image_padding", &s.Image.Padding)
	if v, ok := norm["image_mapping"]; ok {
		if m, err := cast.ToStringMapStringE(v); err == nil && len(m) > 0 {
			s.Image.Mapping = m
		}
	}

	return s
}

func validAnchor(a Anchor) bool {
	switch a {
	case AnchorTopLeft, AnchorTopCenter, AnchorTopRight,
		AnchorCenterLeft, AnchorCenter, AnchorCenterRight,
		AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight,
		AnchorBottomRightFlush:
		return true
	}
	return false
}

func setInt(m map[string]interface{}, key string, dst *int) {
	if v, ok := m[key]; ok {
		if n, err := cast.ToIntE(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(m map[string]interface{}, key string, dst *float64) {
	if v, ok := m[key]; ok {
		if f, err := cast.ToFloat64E(v); err == nil && f > 0 {
			*dst = f
		}
	}
}

func setBool(m map[string]interface{}, key string, dst *bool) {
	if v, ok := m[key]; ok {
		if b, err := cast.ToBoolE(v); err == nil {
			*dst = b
		}
	}
}

func setString(m map[string]interface{}, key string, dst *string) {
	if v, ok := m[key]; ok {
		if str := cast.ToString(v); str != "" {
			*dst = str
		}
	}
}
