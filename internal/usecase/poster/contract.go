package poster

import (
	"context"
	"io"

	"poster-badger/internal/domain"
)

type posterRepository interface {
	Save(ctx context.Context, p *domain.Poster) error
	GetByID(ctx context.Context, id string) (*domain.Poster, error)
	UpdateStatus(ctx context.Context, id string, status domain.PosterStatus) error
	Delete(ctx context.Context, id string) error
	GetBadgeResults(ctx context.Context, posterID string) ([]domain.BadgeResult, error)
}

type fileRepository interface {
	SaveOriginal(ctx context.Context, filename string, data io.Reader, size int64) (string, error)
	GetObject(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteObject(ctx context.Context, path string) error
}

type taskProducer interface {
	Send(ctx context.Context, task *domain.EnhanceTask) error
}
