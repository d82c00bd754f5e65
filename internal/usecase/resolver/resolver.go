// Package resolver implements the content resolver and style lookup
// boundaries the composition engine is parameterized with. The engine only
// ever sees the interfaces; this package binds them to task metadata and
// persisted per-type settings.
package resolver

import (
	"context"

	"poster-badger/internal/domain"
)

// MetadataResolver derives badge content from the media fields an enhance
// task carries. Empty fields resolve to nil content, which the pipeline
// records as skipped.
type MetadataResolver struct {
	media domain.MediaInfo
}

func NewMetadataResolver(media domain.MediaInfo) *MetadataResolver {
	return &MetadataResolver{media: media}
}

func (r *MetadataResolver) Resolve(_ context.Context, t domain.BadgeType) (*domain.BadgeContent, error) {
	switch t {
	case domain.BadgeAudio:
		if r.media.AudioCodec == "" {
			return nil, nil
		}
		return domain.TextContent(r.media.AudioCodec), nil
	case domain.BadgeResolution:
		if r.media.Resolution == "" {
			return nil, nil
		}
		return domain.TextContent(r.media.Resolution), nil
	case domain.BadgeAwards:
		if r.media.Awards == "" {
			return nil, nil
		}
		return domain.ImageContent(r.media.Awards), nil
	case domain.BadgeReview:
		if len(r.media.Reviews) == 0 {
			return nil, nil
		}
		return domain.ReviewContent(r.media.Reviews), nil
	default:
		return nil, nil
	}
}
