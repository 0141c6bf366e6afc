package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/linkhive/media-pipeline-go/internal/cache"
	"github.com/linkhive/media-pipeline-go/internal/config"
	"github.com/linkhive/media-pipeline-go/internal/db"
	"github.com/linkhive/media-pipeline-go/internal/document"
	workerHandler "github.com/linkhive/media-pipeline-go/internal/handler/worker"
	"github.com/linkhive/media-pipeline-go/internal/imaging"
	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/repository/mysql"
	"github.com/linkhive/media-pipeline-go/internal/storage"
	"github.com/linkhive/media-pipeline-go/internal/task"
	mediaSvc "github.com/linkhive/media-pipeline-go/internal/usecase/media"
	"github.com/linkhive/media-pipeline-go/internal/video"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	initBuckets(strg, []string{cfg.PrivateBucket, cfg.PublicBucket})

	repo := mysql.NewDescriptorRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)

	transformer := imaging.NewTransformer(imaging.NewWebPEncoder())
	imageSvc := mediaSvc.NewImagePipeline(repo, strg, transformer, ca, cfg.PrivateBucket, cfg.PublicBucket)
	videoSvc := mediaSvc.NewVideoPipeline(repo, strg, video.NewFFmpegTranscoder(), transformer, ca, cfg.PrivateBucket, cfg.PublicBucket)
	documentSvc := mediaSvc.NewDocumentPipeline(repo, strg, document.NewPDFOptimiser(), ca, cfg.PrivateBucket)
	marker := mediaSvc.NewFailureMarker(repo, ca)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessImage, task.RateLimited(task.ImageRatePerSec, func(ctx context.Context, t *asynq.Task) error {
		env, err := task.ParseJobEnvelope(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessImageHandler(ctx, env, imageSvc, marker, isLastAttempt(ctx))
	}))
	mux.HandleFunc(task.TypeProcessVideo, task.RateLimited(task.VideoRatePerSec, func(ctx context.Context, t *asynq.Task) error {
		env, err := task.ParseJobEnvelope(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessVideoHandler(ctx, env, videoSvc, marker, isLastAttempt(ctx))
	}))
	mux.HandleFunc(task.TypeProcessDocument, task.RateLimited(task.DocumentRatePerSec, func(ctx context.Context, t *asynq.Task) error {
		env, err := task.ParseJobEnvelope(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessDocumentHandler(ctx, env, documentSvc, marker, isLastAttempt(ctx))
	}))

	runWorker(ctx, mux, cfg, database)
}

// isLastAttempt reports whether the queue will retry this task again after a
// failure. Terminal failures must be recorded on the descriptor instead of
// leaving it stuck in processing.
func isLastAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return true
	}
	return retried >= maxRetry
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MySQLDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.BlobStorage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.CDNEndpoint,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(strg port.BlobStorage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(context.Background(), "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

const documentConcurrency = 2

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	// One server per queue. A shared pool with queue weights only orders
	// dequeueing, so a burst on one queue could occupy every slot; a
	// dedicated server makes each concurrency value a hard cap.
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	var servers []*asynq.Server
	for _, qc := range task.ServerConfigs(cfg.ImageConcurrency, cfg.VideoConcurrency, documentConcurrency) {
		srv := asynq.NewServer(redisOpt, qc.Config)
		servers = append(servers, srv)
		go func(queue string, srv *asynq.Server) {
			if err := srv.Run(mux); err != nil {
				logger.Errorf(context.Background(), "❌  Worker for queue %q failed: %v", queue, err)
				os.Exit(1)
			}
		}(qc.Queue, srv)
	}
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, srv := range servers {
		srv.Shutdown() // stop accepting new tasks, finish in-flight
	}
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
