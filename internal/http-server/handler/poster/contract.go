package poster

import (
	"context"
	"io"

	"poster-badger/internal/domain"
)

type posterUsecase interface {
	UploadPoster(ctx context.Context, file io.Reader, filename, contentType string, fileSize int64, badgeTypes []domain.BadgeType, media domain.MediaInfo, settings map[domain.BadgeType]map[string]interface{}) (*domain.Poster, error)
	GetPoster(ctx context.Context, id string, enhanced bool) (*domain.Poster, string, io.ReadCloser, error)
	GetStatus(ctx context.Context, id string) (domain.PosterStatus, []domain.BadgeResult, error)
	DeletePoster(ctx context.Context, id string) error
}
