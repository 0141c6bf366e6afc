package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/linkhive/media-pipeline-go/internal/cache"
	"github.com/linkhive/media-pipeline-go/internal/config"
	"github.com/linkhive/media-pipeline-go/internal/db"
	"github.com/linkhive/media-pipeline-go/internal/handler/api"
	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	cMiddleware "github.com/linkhive/media-pipeline-go/internal/middleware"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/renderer"
	"github.com/linkhive/media-pipeline-go/internal/repository/mysql"
	"github.com/linkhive/media-pipeline-go/internal/storage"
	"github.com/linkhive/media-pipeline-go/internal/task"
	mediaSvc "github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, []string{cfg.PrivateBucket, cfg.PublicBucket})

	repo := mysql.NewDescriptorRepository(database.DB)
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, cfg.ImageAttempts, cfg.VideoAttempts)
		logger.Info(ctx, "✅  Redis cache and job bus enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and async processing are disabled")
	}

	limits := mediaSvc.DefaultLimits()
	limits.MaxImageBytes = cfg.MaxImageBytes
	limits.MaxVideoBytes = cfg.MaxVideoBytes
	limits.SignedURLTTL = cfg.SignedURLTTL

	ticketMinterSvc := mediaSvc.NewTicketMinter(strg, cfg.PrivateBucket, mediaid.New, uuid.NewString, limits)
	r.Post("/media/upload_ticket", api.MintUploadTicketHandler(ticketMinterSvc))

	uploadCompleterSvc := mediaSvc.NewUploadCompleter(repo, strg, dispatcher, cfg.PrivateBucket, limits)
	r.Post("/media/complete_upload", api.CompleteUploadHandler(uploadCompleterSvc))

	getDescriptorSvc := mediaSvc.NewDescriptorGetter(repo, cfg.DescriptorCacheTTL)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.With(cMiddleware.WithDescriptorID()).
		Get("/media/{id}", api.GetDescriptorHandler(rendererSvc, getDescriptorSvc))

	getStatusSvc := mediaSvc.NewStatusGetter(repo)
	r.With(cMiddleware.WithDescriptorID()).
		Get("/media/{id}/status", api.GetStatusHandler(getStatusSvc))

	getVariantSvc := mediaSvc.NewVariantGetter(repo, ca, cfg.DescriptorCacheTTL)
	r.With(cMiddleware.WithDescriptorID()).
		Get("/media/{id}/variant/{purpose}", api.GetVariantHandler(getVariantSvc))

	reingesterSvc := mediaSvc.NewReingester(repo, dispatcher, ca)
	r.With(cMiddleware.WithDescriptorID()).
		Post("/media/{id}/reingest", api.ReingestHandler(reingesterSvc))

	deleteMediaSvc := mediaSvc.NewMediaDeleter(repo, ca, strg, cfg.PrivateBucket, cfg.PublicBucket)
	r.With(cMiddleware.WithDescriptorID()).
		Delete("/media/{id}", api.DeleteMediaHandler(deleteMediaSvc))

	listPostMediaSvc := mediaSvc.NewPostMediaLister(repo)
	r.Get("/posts/{postID}/media", api.ListPostMediaHandler(listPostMediaSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MySQLDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.BlobStorage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.CDNEndpoint,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.BlobStorage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
