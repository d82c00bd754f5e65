package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"poster-badger/internal/domain"
	"poster-badger/internal/repository/poster"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type PostersRepository struct {
	db      *dbpg.DB
	retries retry.Strategy
}

func NewPostersRepository(db *dbpg.DB, retries retry.Strategy) *PostersRepository {
	return &PostersRepository{
		db:      db,
		retries: retries,
	}
}

func (r *PostersRepository) Save(ctx context.Context, p *domain.Poster) error {
	query := `
		INSERT INTO posters (
			id, original_filename, original_size, mime_type,
			status, original_path, enhanced_path, bucket, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecWithRetry(ctx, r.retries, query,
		p.ID,
		p.OriginalFilename,
		p.OriginalSize,
		p.MimeType,
		p.Status,
		p.OriginalPath,
		p.EnhancedPath,
		p.Bucket,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save poster: %w", err)
	}

	return nil
}

func (r *PostersRepository) GetByID(ctx context.Context, id string) (*domain.Poster, error) {
	query := `
		SELECT id, original_filename, original_size, mime_type,
		       status, original_path, enhanced_path, bucket, created_at, updated_at
		FROM posters
		WHERE id = $1 AND status != $2
	`

	row, err := r.db.QueryRowWithRetry(ctx, r.retries, query, id, domain.StatusDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to query poster: %w", err)
	}

	var p domain.Poster
	err = row.Scan(
		&p.ID,
		&p.OriginalFilename,
		&p.OriginalSize,
		&p.MimeType,
		&p.Status,
		&p.OriginalPath,
		&p.EnhancedPath,
		&p.Bucket,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, poster.ErrPosterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan poster: %w", err)
	}

	return &p, nil
}

func (r *PostersRepository) UpdateStatus(ctx context.Context, id string, status domain.PosterStatus) error {
	query := `UPDATE posters SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return poster.ErrPosterNotFound
	}

	return nil
}

func (r *PostersRepository) SetEnhancedPath(ctx context.Context, id, path string) error {
	query := `UPDATE posters SET enhanced_path = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, path, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set enhanced path: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return poster.ErrPosterNotFound
	}

	return nil
}

func (r *PostersRepository) Delete(ctx context.Context, id string) error {
	return r.UpdateStatus(ctx, id, domain.StatusDeleted)
}

// SaveBadgeResults records the per-badge outcome rows for one enhancement run.
func (r *PostersRepository) SaveBadgeResults(ctx context.Context, posterID string, results []domain.BadgeResult) error {
	query := `
		INSERT INTO badge_results (id, poster_id, badge_type, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now()
	for _, res := range results {
		_, err := r.db.ExecWithRetry(ctx, r.retries, query,
			uuid.New().String(),
			posterID,
			res.Type,
			res.Status,
			res.Error,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to save badge result: %w", err)
		}
	}

	return nil
}

func (r *PostersRepository) GetBadgeResults(ctx context.Context, posterID string) ([]domain.BadgeResult, error) {
	query := `
		SELECT badge_type, status, error
		FROM badge_results
		WHERE poster_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryWithRetry(ctx, r.retries, query, posterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query badge results: %w", err)
	}
	defer rows.Close()

	var results []domain.BadgeResult
	for rows.Next() {
		var res domain.BadgeResult
		if err := rows.Scan(&res.Type, &res.Status, &res.Error); err != nil {
			return nil, fmt.Errorf("failed to scan badge result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}
