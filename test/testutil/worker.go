package testutil

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"github.com/linkhive/media-pipeline-go/internal/cache"
	"github.com/linkhive/media-pipeline-go/internal/db"
	"github.com/linkhive/media-pipeline-go/internal/document"
	workerHandler "github.com/linkhive/media-pipeline-go/internal/handler/worker"
	"github.com/linkhive/media-pipeline-go/internal/imaging"
	"github.com/linkhive/media-pipeline-go/internal/repository/mysql"
	"github.com/linkhive/media-pipeline-go/internal/storage"
	"github.com/linkhive/media-pipeline-go/internal/task"
	mediaSvc "github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

// StartWorker starts an asynq worker consuming the image and document queues.
// Video jobs are not handled here: transcoding needs an ffmpeg binary the
// test environment does not carry.
// It returns a function to gracefully shut down the worker.
func StartWorker(dbConn *db.Database, strg *storage.MinioStorage, redisAddr string) func() {
	repo := mysql.NewDescriptorRepository(dbConn.DB)
	ca := cache.NewNoop()

	transformer := imaging.NewTransformer(imaging.NewWebPEncoder())
	imageSvc := mediaSvc.NewImagePipeline(repo, strg, transformer, ca, PrivateBucket, PublicBucket)
	documentSvc := mediaSvc.NewDocumentPipeline(repo, strg, document.NewPDFOptimiser(), ca, PrivateBucket)
	marker := mediaSvc.NewFailureMarker(repo, ca)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessImage, func(ctx context.Context, t *asynq.Task) error {
		env, err := task.ParseJobEnvelope(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessImageHandler(ctx, env, imageSvc, marker, lastAttempt(ctx))
	})
	mux.HandleFunc(task.TypeProcessDocument, func(ctx context.Context, t *asynq.Task) error {
		env, err := task.ParseJobEnvelope(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessDocumentHandler(ctx, env, documentSvc, marker, lastAttempt(ctx))
	})

	var servers []*asynq.Server
	for _, qc := range task.ServerConfigs(2, 1, 2) {
		if qc.Queue == task.QueueVideo {
			continue
		}
		srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, qc.Config)
		servers = append(servers, srv)
		go func(srv *asynq.Server) {
			if err := srv.Run(mux); err != nil {
				log.Printf("worker stopped: %v", err)
			}
		}(srv)
	}

	return func() {
		for _, srv := range servers {
			srv.Shutdown()
		}
	}
}

func lastAttempt(ctx context.Context) bool {
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
