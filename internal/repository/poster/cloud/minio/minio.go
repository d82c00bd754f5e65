package minio

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"poster-badger/internal/config"
	"poster-badger/internal/domain"
	repo "poster-badger/internal/repository/poster"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type FileRepository struct {
	client  *minio.Client
	cfg     *config.Config
	retries retry.Strategy
	logger  *zlog.Zerolog
}

func NewMinIORepository(cfg *config.Config, retries retry.Strategy, logger *zlog.Zerolog) (*FileRepository, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	r := &FileRepository{
		client:  client,
		cfg:     cfg,
		retries: retries,
		logger:  logger,
	}

	if err := r.ensureBucket(context.Background()); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *FileRepository) ensureBucket(ctx context.Context) error {
	bucket := r.cfg.Minio.Bucket

	exists, err := r.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := r.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	r.logger.Info().Str("bucket", bucket).Msg("Bucket created")
	return nil
}

func (r *FileRepository) SaveOriginal(ctx context.Context, filename string, data io.Reader, size int64) (string, error) {
	path := domain.PathPrefixOriginal + uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	_, err := r.client.PutObject(ctx, r.cfg.Minio.Bucket, path, data, size, minio.PutObjectOptions{
		ContentType: domain.ContentTypeForPath(filename),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", repo.ErrStorageError, err)
	}

	return path, nil
}

func (r *FileRepository) SaveEnhanced(ctx context.Context, path string, data io.Reader, size int64, contentType string) error {
	_, err := r.client.PutObject(ctx, r.cfg.Minio.Bucket, path, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", repo.ErrStorageError, err)
	}
	return nil
}

func (r *FileRepository) GetObject(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := r.client.GetObject(ctx, r.cfg.Minio.Bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repo.ErrStorageError, err)
	}

	// GetObject is lazy; a stat is the earliest the missing-key error shows up.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return nil, repo.ErrFileNotFound
		}
		return nil, fmt.Errorf("%w: %v", repo.ErrStorageError, err)
	}

	return obj, nil
}

func (r *FileRepository) DeleteObject(ctx context.Context, path string) error {
	err := r.client.RemoveObject(ctx, r.cfg.Minio.Bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", repo.ErrStorageError, err)
	}
	return nil
}

func (r *FileRepository) DeleteObjectsWithPrefix(ctx context.Context, prefix string) error {
	listCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	objects := r.client.ListObjects(listCtx, r.cfg.Minio.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for obj := range objects {
		if obj.Err != nil {
			return fmt.Errorf("%w: %v", repo.ErrStorageError, obj.Err)
		}
		if err := r.DeleteObject(ctx, obj.Key); err != nil {
			return err
		}
	}

	return nil
}
