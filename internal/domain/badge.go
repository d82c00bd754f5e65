package domain

import "image"

type BadgeType string

const (
	BadgeAudio      BadgeType = "audio"
	BadgeResolution BadgeType = "resolution"
	BadgeReview     BadgeType = "review"
	BadgeAwards     BadgeType = "awards"
)

// ContentKind tags the BadgeContent variant supplied by a content resolver.
type ContentKind string

const (
	ContentText   ContentKind = "text"
	ContentImage  ContentKind = "image"
	ContentReview ContentKind = "review"
)

// BadgeContent is what a resolver produced for one badge type. Text carries a
// display string (which doubles as an image lookup key when the style enables
// image badges). Review carries one entry per rating source.
type BadgeContent struct {
	Kind     ContentKind
	Text     string
	ImageKey string
	Reviews  []ReviewItem
}

type ReviewItem struct {
	Source   string `json:"source"`
	Percent  string `json:"percent"`
	ImageKey string `json:"image_key"`
}

func TextContent(text string) *BadgeContent {
	return &BadgeContent{Kind: ContentText, Text: text}
}

func ImageContent(key string) *BadgeContent {
	return &BadgeContent{Kind: ContentImage, ImageKey: key}
}

func ReviewContent(items []ReviewItem) *BadgeContent {
	return &BadgeContent{Kind: ContentReview, Reviews: items}
}

// RenderedBadge is an owned raster plus its dimensions. It is immutable once
// produced; ownership passes into the compositing step.
type RenderedBadge struct {
	Img    *image.RGBA
	Width  int
	Height int
}

type BadgeResultStatus string

const (
	BadgeApplied BadgeResultStatus = "applied"
	BadgeSkipped BadgeResultStatus = "skipped"
	BadgeFailed  BadgeResultStatus = "failed"
)

type BadgeResult struct {
	Type   BadgeType         `json:"type"`
	Status BadgeResultStatus `json:"status"`
	Error  string            `json:"error,omitempty"`
}

// CompositionOutcome is the per-poster record of what happened to each
// requested badge type, in request order.
type CompositionOutcome struct {
	Results    []BadgeResult
	Applied    []BadgeType
	OutputPath string
}

func (o *CompositionOutcome) Record(t BadgeType, status BadgeResultStatus, errMsg string) {
	o.Results = append(o.Results, BadgeResult{Type: t, Status: status, Error: errMsg})
	if status == BadgeApplied {
		o.Applied = append(o.Applied, t)
	}
}

func (o *CompositionOutcome) AppliedCount() int {
	return len(o.Applied)
}

// Anchor names a placement on the poster: a nine point grid plus one flush
// variant that ignores edge padding.
type Anchor string

const (
	AnchorTopLeft          Anchor = "top-left"
	AnchorTopCenter        Anchor = "top-center"
	AnchorTopRight         Anchor = "top-right"
	AnchorCenterLeft       Anchor = "center-left"
	AnchorCenter           Anchor = "center"
	AnchorCenterRight      Anchor = "center-right"
	AnchorBottomLeft       Anchor = "bottom-left"
	AnchorBottomCenter     Anchor = "bottom-center"
	AnchorBottomRight      Anchor = "bottom-right"
	AnchorBottomRightFlush Anchor = "bottom-right-flush"
)

type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

const (
	DefaultJPEGQuality  = 95
	DefaultMinBadgeSide = 30
)
