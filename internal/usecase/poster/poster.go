package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"poster-badger/internal/domain"
	repoPoster "poster-badger/internal/repository/poster"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

type PosterUsecase struct {
	repo     posterRepository
	fileRepo fileRepository
	producer taskProducer
	logger   *zlog.Zerolog
}

func NewPosterUsecase(repo posterRepository, fileRepo fileRepository, producer taskProducer, logger *zlog.Zerolog) *PosterUsecase {
	return &PosterUsecase{
		repo:     repo,
		fileRepo: fileRepo,
		producer: producer,
		logger:   logger,
	}
}

// UploadPoster stores the original poster and enqueues an enhancement task
// for the requested badge types. The worker picks the task up asynchronously.
func (u *PosterUsecase) UploadPoster(ctx context.Context, file io.Reader, filename, contentType string, fileSize int64, badgeTypes []domain.BadgeType, media domain.MediaInfo, settings map[domain.BadgeType]map[string]interface{}) (*domain.Poster, error) {
	posterID := uuid.New().String()

	originalPath, err := u.fileRepo.SaveOriginal(ctx, filename, file, fileSize)
	if err != nil {
		u.logger.Error().Err(err).Str("filename", filename).Msg("Failed to save original poster")
		if errors.Is(err, repoPoster.ErrStorageError) {
			return nil, fmt.Errorf("%w: %v", ErrStorageError, err)
		}
		return nil, fmt.Errorf("failed to save poster: %w", err)
	}

	p := &domain.Poster{
		ID:               posterID,
		OriginalFilename: filename,
		OriginalSize:     fileSize,
		MimeType:         contentType,
		Status:           domain.StatusUploaded,
		OriginalPath:     originalPath,
		Bucket:           domain.BucketPosters,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := u.repo.Save(ctx, p); err != nil {
		u.fileRepo.DeleteObject(ctx, originalPath)
		return nil, fmt.Errorf("failed to save poster metadata: %w", err)
	}

	task := &domain.EnhanceTask{
		ID:           uuid.New().String(),
		PosterID:     posterID,
		OriginalPath: originalPath,
		Bucket:       domain.BucketPosters,
		BadgeTypes:   badgeTypes,
		Media:        media,
		Settings:     settings,
	}

	if err := u.producer.Send(ctx, task); err != nil {
		u.logger.Error().Err(err).Str("poster_id", posterID).Msg("Failed to send enhance task")
		u.updateStatus(ctx, posterID, domain.StatusFailed)
		return nil, fmt.Errorf("%w: %v", ErrMessageQueueError, err)
	}

	if err := u.repo.UpdateStatus(ctx, posterID, domain.StatusEnhancing); err != nil {
		u.logger.Error().Err(err).Str("poster_id", posterID).Msg("Failed to update status")
	} else {
		p.Status = domain.StatusEnhancing
	}

	u.logger.Info().
		Str("poster_id", posterID).
		Str("filename", filename).
		Int("badge_types", len(badgeTypes)).
		Msg("Poster uploaded and queued for enhancement")

	return p, nil
}

// GetPoster returns the poster record, the object path served and a reader
// over either the enhanced or the original bytes, preferring enhanced when
// requested and present. The path tells the caller which variant (and hence
// which format) it is actually streaming.
func (u *PosterUsecase) GetPoster(ctx context.Context, id string, enhanced bool) (*domain.Poster, string, io.ReadCloser, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repoPoster.ErrPosterNotFound) {
			return nil, "", nil, ErrPosterNotFound
		}
		return nil, "", nil, fmt.Errorf("failed to get poster: %w", err)
	}

	path := p.OriginalPath
	if enhanced {
		if p.EnhancedPath == "" {
			return nil, "", nil, ErrNotEnhanced
		}
		path = p.EnhancedPath
	}

	reader, err := u.fileRepo.GetObject(ctx, path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to get poster file: %w", err)
	}

	return p, path, reader, nil
}

func (u *PosterUsecase) GetStatus(ctx context.Context, id string) (domain.PosterStatus, []domain.BadgeResult, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repoPoster.ErrPosterNotFound) {
			return "", nil, ErrPosterNotFound
		}
		return "", nil, fmt.Errorf("failed to get poster: %w", err)
	}

	results, err := u.repo.GetBadgeResults(ctx, id)
	if err != nil {
		u.logger.Error().Err(err).Str("poster_id", id).Msg("Failed to load badge results")
		results = nil
	}

	return p.Status, results, nil
}

func (u *PosterUsecase) DeletePoster(ctx context.Context, id string) error {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repoPoster.ErrPosterNotFound) {
			return ErrPosterNotFound
		}
		return fmt.Errorf("failed to get poster: %w", err)
	}

	if err := u.fileRepo.DeleteObject(ctx, p.OriginalPath); err != nil {
		u.logger.Error().Err(err).Str("poster_id", id).Msg("Failed to delete original file")
	}
	if p.EnhancedPath != "" {
		if err := u.fileRepo.DeleteObject(ctx, p.EnhancedPath); err != nil {
			u.logger.Error().Err(err).Str("poster_id", id).Msg("Failed to delete enhanced file")
		}
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete poster: %w", err)
	}

	u.logger.Info().Str("poster_id", id).Msg("Poster deleted")
	return nil
}

func (u *PosterUsecase) updateStatus(ctx context.Context, id string, status domain.PosterStatus) {
	if err := u.repo.UpdateStatus(ctx, id, status); err != nil {
		u.logger.Error().Err(err).Str("poster_id", id).Msg("Failed to update status")
	}
}
