package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	kafka_impl "poster-badger/internal/broker/kafka"
	"poster-badger/internal/config"
	"poster-badger/internal/domain"
	minio_repo "poster-badger/internal/repository/poster/cloud/minio"
	postgres_repo "poster-badger/internal/repository/poster/db/postgres"
	"poster-badger/internal/usecase/enhancer"
	"poster-badger/internal/usecase/enhancer/badge"
	"poster-badger/internal/usecase/enhancer/paint"
	"poster-badger/internal/usecase/resolver"

	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
)

type Worker struct {
	cfg        *config.Config
	logger     *zlog.Zerolog
	db         *dbpg.DB
	broker     *kafka_impl.KafkaClient
	fileRepo   *minio_repo.FileRepository
	enhancer   *enhancer.Enhancer
	posterRepo *postgres_repo.PostersRepository
	wg         sync.WaitGroup
}

func NewWorker(cfg *config.Config, logger *zlog.Zerolog) (*Worker, error) {
	dbOpts := &dbpg.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}

	db, err := dbpg.New(cfg.DBDSN(), []string{}, dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fileRepo, err := minio_repo.NewMinIORepository(cfg, cfg.DefaultRetryStrategy(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	brokerClient := kafka_impl.NewKafkaClient(cfg)

	// The font and asset caches live for the whole worker run and are shared
	// by all worker goroutines through the renderer.
	fonts := paint.NewFontCache(cfg.Badges.FontDir)
	assets := badge.NewAssetCache(cfg.Badges.AssetDir)
	renderer := badge.NewRenderer(fonts, assets, logger)
	posterEnhancer := enhancer.NewEnhancer(renderer, cfg.Badges.JPEGQuality, logger)

	posterRepo := postgres_repo.NewPostersRepository(db, cfg.DefaultRetryStrategy())

	return &Worker{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		broker:     brokerClient,
		fileRepo:   fileRepo,
		enhancer:   posterEnhancer,
		posterRepo: posterRepo,
	}, nil
}

func (w *Worker) Run() error {
	w.logger.Info().Int("concurrency", w.cfg.Worker.Concurrency).Msg("Starting worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		w.logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal, stopping worker...")
		cancel()
	}()

	messages := make(chan kafka.Message, w.cfg.Worker.Concurrency*2)
	w.broker.StartConsuming(ctx, messages, w.cfg.DefaultRetryStrategy())

	for i := 0; i < w.cfg.Worker.Concurrency; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processWorker(ctx, id, messages)
		}(i)
	}

	w.logger.Info().Msg("Worker started successfully")

	<-ctx.Done()
	w.logger.Info().Msg("Shutting down worker gracefully...")
	close(messages)
	w.wg.Wait()

	if w.db != nil && w.db.Master != nil {
		w.db.Master.Close()
	}
	if w.broker != nil {
		w.broker.Close()
	}

	w.logger.Info().Msg("Worker stopped gracefully")
	return nil
}

func (w *Worker) processWorker(ctx context.Context, id int, messages <-chan kafka.Message) {
	w.logger.Info().Int("worker_id", id).Msg("Worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Int("worker_id", id).Msg("Worker stopping")
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			startTime := time.Now()
			if err := w.safeProcessMessage(ctx, id, msg); err != nil {
				w.logger.Error().
					Err(err).
					Int("worker_id", id).
					Int64("offset", msg.Offset).
					Msg("Failed to process message")
				continue
			}
			if err := w.broker.Commit(ctx, msg); err != nil {
				w.logger.Error().
					Err(err).
					Int("worker_id", id).
					Int64("offset", msg.Offset).
					Msg("Failed to commit message after successful processing")
				continue
			}
			w.logger.Debug().
				Int("worker_id", id).
				Int64("offset", msg.Offset).
				Dur("duration", time.Since(startTime)).
				Msg("Message processed and committed")
		}
	}
}

// safeProcessMessage keeps a panic in one badge render from killing the whole
// worker; the message is treated as failed and left uncommitted.
func (w *Worker) safeProcessMessage(ctx context.Context, workerID int, msg kafka.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().
				Int("worker_id", workerID).
				Interface("panic", r).
				Int64("offset", msg.Offset).
				Msg("Panic recovered while processing message")
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.processMessage(ctx, workerID, msg)
}

func (w *Worker) processMessage(ctx context.Context, workerID int, msg kafka.Message) error {
	var task domain.EnhanceTask
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		return fmt.Errorf("failed to unmarshal task: %w", err)
	}

	w.logger.Info().
		Int("worker_id", workerID).
		Str("task_id", task.ID).
		Str("poster_id", task.PosterID).
		Msg("Processing task")

	outcome, enhancedPath, err := w.enhance(ctx, &task)
	if err != nil {
		w.logger.Error().Err(err).Str("poster_id", task.PosterID).Msg("Enhancement failed")
		w.setStatus(ctx, task.PosterID, domain.StatusFailed)
		w.sendFailureResult(ctx, task, err.Error())
		return err
	}

	if err := w.posterRepo.SaveBadgeResults(ctx, task.PosterID, outcome.Results); err != nil {
		w.logger.Error().Err(err).Str("poster_id", task.PosterID).Msg("Failed to save badge results")
	}
	if err := w.posterRepo.SetEnhancedPath(ctx, task.PosterID, enhancedPath); err != nil {
		w.logger.Error().Err(err).Str("poster_id", task.PosterID).Msg("Failed to record enhanced path")
	}
	w.setStatus(ctx, task.PosterID, domain.StatusCompleted)

	result := &domain.EnhanceResult{
		ID:           task.ID,
		PosterID:     task.PosterID,
		Status:       domain.StatusCompleted,
		EnhancedPath: enhancedPath,
		Results:      outcome.Results,
	}
	if err := w.sendResult(ctx, result); err != nil {
		return fmt.Errorf("failed to send result: %w", err)
	}

	w.logger.Info().
		Int("worker_id", workerID).
		Str("poster_id", task.PosterID).
		Int("applied", outcome.AppliedCount()).
		Int("requested", len(task.BadgeTypes)).
		Msg("Task completed")

	return nil
}

// enhance stages the original poster into the scratch directory, runs the
// composition engine on it and uploads the result. Task IDs make the scratch
// paths unique, so concurrent workers never collide on output files.
func (w *Worker) enhance(ctx context.Context, task *domain.EnhanceTask) (*domain.CompositionOutcome, string, error) {
	srcPath, err := w.stageOriginal(ctx, task)
	if err != nil {
		return nil, "", err
	}
	defer os.Remove(srcPath)

	outPath := srcPath + ".enhanced.jpg"
	defer os.Remove(outPath)

	contentResolver := resolver.NewMetadataResolver(task.Media)
	styles := resolver.NewSettingsStyles(task.Settings, w.cfg.Badges.AssetDir)

	outcome, err := w.enhancer.Compose(ctx, srcPath, task.BadgeTypes, contentResolver, styles, outPath)
	if err != nil {
		return nil, "", fmt.Errorf("composition failed: %w", err)
	}

	ext, contentType := enhancedObjectMeta(task.OriginalPath, outcome.AppliedCount())
	enhancedPath := domain.PathPrefixEnhanced + task.PosterID + ext
	if err := w.uploadEnhanced(ctx, outPath, enhancedPath, contentType); err != nil {
		return nil, "", err
	}

	return outcome, enhancedPath, nil
}

// enhancedObjectMeta picks the stored extension and content type for the
// result object. Applied badges always produce a JPEG; a zero-applied run is
// a byte-for-byte copy, so the original's format carries through.
func enhancedObjectMeta(originalPath string, applied int) (string, string) {
	if applied > 0 {
		return ".jpg", "image/jpeg"
	}

	ext := strings.ToLower(filepath.Ext(originalPath))
	if ext == "" {
		return ".jpg", "image/jpeg"
	}
	return ext, domain.ContentTypeForPath(originalPath)
}

func (w *Worker) stageOriginal(ctx context.Context, task *domain.EnhanceTask) (string, error) {
	reader, err := w.fileRepo.GetObject(ctx, task.OriginalPath)
	if err != nil {
		return "", fmt.Errorf("failed to get original poster: %w", err)
	}
	defer reader.Close()

	dir := w.cfg.Worker.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "poster-"+task.ID+filepath.Ext(task.OriginalPath))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to stage original poster: %w", err)
	}

	return path, nil
}

func (w *Worker) uploadEnhanced(ctx context.Context, localPath, objectPath, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open enhanced poster: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat enhanced poster: %w", err)
	}

	if err := w.fileRepo.SaveEnhanced(ctx, objectPath, f, info.Size(), contentType); err != nil {
		return fmt.Errorf("failed to upload enhanced poster: %w", err)
	}
	return nil
}

func (w *Worker) setStatus(ctx context.Context, posterID string, status domain.PosterStatus) {
	if err := w.posterRepo.UpdateStatus(ctx, posterID, status); err != nil {
		w.logger.Error().Err(err).Str("poster_id", posterID).Msg("Failed to update poster status")
	}
}

func (w *Worker) sendResult(ctx context.Context, result *domain.EnhanceResult) error {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	return w.broker.SendResult(ctx, w.cfg.DefaultRetryStrategy(), []byte(result.PosterID), resultBytes)
}

func (w *Worker) sendFailureResult(ctx context.Context, task domain.EnhanceTask, errorMsg string) {
	result := &domain.EnhanceResult{
		ID:       task.ID,
		PosterID: task.PosterID,
		Status:   domain.StatusFailed,
		Error:    errorMsg,
	}

	if err := w.sendResult(ctx, result); err != nil {
		w.logger.Error().Err(err).Str("poster_id", task.PosterID).Msg("Failed to send failure result")
	}
}
