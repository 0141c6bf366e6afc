package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/linkhive/media-pipeline-go/internal/cache"
	"github.com/linkhive/media-pipeline-go/internal/handler/api"
	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	cMiddleware "github.com/linkhive/media-pipeline-go/internal/middleware"
	"github.com/linkhive/media-pipeline-go/internal/migration"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/repository/mysql"
	mediaSvc "github.com/linkhive/media-pipeline-go/internal/usecase/media"
	"github.com/linkhive/media-pipeline-go/test/testutil"
)

func setupMediaDeleter(t *testing.T) (*mysql.DescriptorRepository, port.MediaDeleter, func()) {
	t.Helper()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	if err := migration.MigrateUp(testDB.DB); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	tb, err := testutil.SetupTestBuckets(GlobalMinioClient)
	if err != nil {
		t.Fatalf("setup buckets: %v", err)
	}

	repo := mysql.NewDescriptorRepository(testDB.DB)
	svc := mediaSvc.NewMediaDeleter(repo, cache.NewNoop(), GlobalStrg, testutil.PrivateBucket, testutil.PublicBucket)

	cleanup := func() {
		_ = tb.Cleanup()
		_ = testDB.Cleanup()
	}

	return repo, svc, cleanup
}

func TestDeleteMediaIntegration_Success(t *testing.T) {
	ctx := context.Background()

	repo, svc, cleanup := setupMediaDeleter(t)
	defer cleanup()

	uid := mediaid.New()
	blobName := mediaid.OriginalBlobName(model.MediaTypeImage, uid, 1, "png")
	content := testutil.GeneratePNG(t, 32, 16)

	if err := GlobalStrg.SaveFile(ctx, testutil.PrivateBucket, blobName, bytes.NewReader(content), int64(len(content)), map[string]string{"Content-Type": "image/png"}); err != nil {
		t.Fatalf("upload original: %v", err)
	}

	variants := model.Variants{}
	for _, purpose := range model.ImagePurposes {
		name := mediaid.VariantBlobName(model.MediaTypeImage, uid, purpose, 1)
		data := testutil.GenerateWebP(t, 16, 8)
		if err := GlobalStrg.SaveFile(ctx, testutil.PublicBucket, name, bytes.NewReader(data), int64(len(data)), map[string]string{"Content-Type": "image/webp"}); err != nil {
			t.Fatalf("upload variant %s: %v", name, err)
		}
		variants[purpose] = GlobalStrg.FileURL(testutil.PublicBucket, name)
	}

	d := &model.MediaDescriptor{
		Owner:            "alice",
		MediaType:        model.MediaTypeImage,
		MimeType:         "image/png",
		MediaUID:         uid.String(),
		Version:          1,
		OriginalBlobName: blobName,
		Status:           model.StatusPending,
		Variants:         model.Variants{},
	}
	if err := repo.InsertPending(ctx, d); err != nil {
		t.Fatalf("insert descriptor: %v", err)
	}
	if err := repo.Transition(ctx, d.ID, []model.Status{model.StatusPending}, model.StatusUploaded); err != nil {
		t.Fatalf("mark uploaded: %v", err)
	}
	if err := repo.Transition(ctx, d.ID, []model.Status{model.StatusUploaded}, model.StatusProcessing); err != nil {
		t.Fatalf("mark processing: %v", err)
	}
	if err := repo.SetReady(ctx, d.ID, variants, model.ReadyMetadata{}); err != nil {
		t.Fatalf("mark ready: %v", err)
	}

	if err := svc.DeleteMedia(ctx, d.ID); err != nil {
		t.Fatalf("DeleteMedia returned error: %v", err)
	}

	if _, err := repo.GetByID(ctx, d.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows after delete, got %v", err)
	}

	exists, err := GlobalStrg.FileExists(ctx, testutil.PrivateBucket, blobName)
	if err != nil {
		t.Fatalf("check original exists: %v", err)
	}
	if exists {
		t.Error("original blob still exists after deletion")
	}
	for _, purpose := range model.ImagePurposes {
		name := mediaid.VariantBlobName(model.MediaTypeImage, uid, purpose, 1)
		ex, err := GlobalStrg.FileExists(ctx, testutil.PublicBucket, name)
		if err != nil {
			t.Fatalf("check variant %s: %v", name, err)
		}
		if ex {
			t.Errorf("variant %s still exists", name)
		}
	}
}

func TestDeleteMediaIntegration_ErrorNotFound(t *testing.T) {
	_, svc, cleanup := setupMediaDeleter(t)
	defer cleanup()

	r := chi.NewRouter()
	r.With(cMiddleware.WithDescriptorID()).Delete("/media/{id}", api.DeleteMediaHandler(svc))

	req := httptest.NewRequest(http.MethodDelete, "/media/999999", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d; want %d", res.StatusCode, http.StatusNotFound)
	}

	var resp errorResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error body")
	}
}

func TestDeleteMediaIntegration_ErrorInvalidID(t *testing.T) {
	_, svc, cleanup := setupMediaDeleter(t)
	defer cleanup()

	r := chi.NewRouter()
	r.With(cMiddleware.WithDescriptorID()).Delete("/media/{id}", api.DeleteMediaHandler(svc))

	req := httptest.NewRequest(http.MethodDelete, "/media/not-a-number", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", res.StatusCode, http.StatusBadRequest)
	}
}
