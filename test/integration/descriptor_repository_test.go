package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	"github.com/linkhive/media-pipeline-go/internal/migration"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/repository/mysql"
	mediaSvc "github.com/linkhive/media-pipeline-go/internal/usecase/media"
	"github.com/linkhive/media-pipeline-go/test/testutil"
)

func setupRepo(t *testing.T) (*mysql.DescriptorRepository, func()) {
	t.Helper()

	testDB, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup DB: %v", err)
	}
	if err := migration.MigrateUp(testDB.DB); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	repo := mysql.NewDescriptorRepository(testDB.DB)
	return repo, func() { _ = testDB.Cleanup() }
}

func newPendingDescriptor(owner string) *model.MediaDescriptor {
	uid := mediaid.New()
	return &model.MediaDescriptor{
		Owner:            owner,
		MediaType:        model.MediaTypeImage,
		MimeType:         "image/png",
		MediaUID:         uid.String(),
		Version:          1,
		OriginalBlobName: mediaid.OriginalBlobName(model.MediaTypeImage, uid, 1, "png"),
		Status:           model.StatusPending,
		Variants:         model.Variants{},
	}
}

func TestDescriptorRepositoryIntegration_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := setupRepo(t)
	defer cleanup()

	d := newPendingDescriptor("alice")
	if err := repo.InsertPending(ctx, d); err != nil {
		t.Fatalf("InsertPending: %v", err)
	}
	if d.ID == 0 {
		t.Fatal("InsertPending did not assign an id")
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Owner != "alice" || got.Status != model.StatusPending || got.Version != 1 {
		t.Errorf("got %+v; want owner alice, status pending, version 1", got)
	}
	if got.OriginalBlobName != d.OriginalBlobName {
		t.Errorf("blob name = %q; want %q", got.OriginalBlobName, d.OriginalBlobName)
	}

	byBlob, err := repo.GetByBlobName(ctx, "alice", d.OriginalBlobName)
	if err != nil {
		t.Fatalf("GetByBlobName: %v", err)
	}
	if byBlob.ID != d.ID {
		t.Errorf("GetByBlobName id = %d; want %d", byBlob.ID, d.ID)
	}
}

func TestDescriptorRepositoryIntegration_DuplicateBlobName(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := setupRepo(t)
	defer cleanup()

	d := newPendingDescriptor("alice")
	if err := repo.InsertPending(ctx, d); err != nil {
		t.Fatalf("InsertPending: %v", err)
	}

	dup := newPendingDescriptor("alice")
	dup.OriginalBlobName = d.OriginalBlobName
	if err := repo.InsertPending(ctx, dup); !errors.Is(err, mediaSvc.ErrConflict) {
		t.Errorf("duplicate InsertPending err = %v; want ErrConflict", err)
	}
}

func TestDescriptorRepositoryIntegration_StatusCAS(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := setupRepo(t)
	defer cleanup()

	d := newPendingDescriptor("alice")
	if err := repo.InsertPending(ctx, d); err != nil {
		t.Fatalf("InsertPending: %v", err)
	}

	if err := repo.Transition(ctx, d.ID, []model.Status{model.StatusPending}, model.StatusUploaded); err != nil {
		t.Fatalf("pending -> uploaded: %v", err)
	}

	// a second identical claim must lose the CAS
	if err := repo.Transition(ctx, d.ID, []model.Status{model.StatusPending}, model.StatusUploaded); !errors.Is(err, mediaSvc.ErrConflict) {
		t.Errorf("stale transition err = %v; want ErrConflict", err)
	}

	if err := repo.Transition(ctx, d.ID, []model.Status{model.StatusUploaded, model.StatusFailed}, model.StatusProcessing); err != nil {
		t.Fatalf("uploaded -> processing: %v", err)
	}

	width, height := 800, 600
	ratio := float64(width) / float64(height)
	color := "c85028"
	variants := model.Variants{
		model.PurposeThumb: "https://cdn.example.com/image_x_thumb_v1.webp",
		model.PurposeFeed:  "https://cdn.example.com/image_x_feed_v1.webp",
	}
	meta := model.ReadyMetadata{Width: &width, Height: &height, AspectRatio: &ratio, DominantColor: &color}
	if err := repo.SetReady(ctx, d.ID, variants, meta); err != nil {
		t.Fatalf("SetReady: %v", err)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusReady {
		t.Errorf("status = %q; want ready", got.Status)
	}
	if len(got.Variants) != 2 || got.Variants[model.PurposeThumb] == "" {
		t.Errorf("variants = %v; want thumb and feed", got.Variants)
	}
	if got.Width == nil || *got.Width != width || got.DominantColor == nil || *got.DominantColor != color {
		t.Errorf("metadata not persisted: %+v", got)
	}

	// SetReady is only legal from processing
	if err := repo.SetReady(ctx, d.ID, variants, meta); !errors.Is(err, mediaSvc.ErrConflict) {
		t.Errorf("SetReady from ready err = %v; want ErrConflict", err)
	}
}

func TestDescriptorRepositoryIntegration_FailAndReingest(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := setupRepo(t)
	defer cleanup()

	d := newPendingDescriptor("alice")
	if err := repo.InsertPending(ctx, d); err != nil {
		t.Fatalf("InsertPending: %v", err)
	}
	if err := repo.Transition(ctx, d.ID, []model.Status{model.StatusPending}, model.StatusUploaded); err != nil {
		t.Fatalf("pending -> uploaded: %v", err)
	}
	if err := repo.Transition(ctx, d.ID, []model.Status{model.StatusUploaded}, model.StatusProcessing); err != nil {
		t.Fatalf("uploaded -> processing: %v", err)
	}

	if err := repo.SetFailed(ctx, d.ID, []model.Status{model.StatusProcessing}, "decode_failed"); err != nil {
		t.Fatalf("SetFailed: %v", err)
	}
	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusFailed || got.ProcessingError == nil || *got.ProcessingError != "decode_failed" {
		t.Errorf("after SetFailed got %+v", got)
	}

	if err := repo.Reingest(ctx, d.ID); err != nil {
		t.Fatalf("Reingest: %v", err)
	}
	got, err = repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusUploaded {
		t.Errorf("status after reingest = %q; want uploaded", got.Status)
	}
	if got.Version != 2 {
		t.Errorf("version after reingest = %d; want 2", got.Version)
	}
	if got.ProcessingError != nil {
		t.Errorf("processing error not cleared: %q", *got.ProcessingError)
	}

	// a descriptor mid-processing cannot be reingested
	if err := repo.Transition(ctx, d.ID, []model.Status{model.StatusUploaded}, model.StatusProcessing); err != nil {
		t.Fatalf("uploaded -> processing: %v", err)
	}
	if err := repo.Reingest(ctx, d.ID); !errors.Is(err, mediaSvc.ErrConflict) {
		t.Errorf("Reingest while processing err = %v; want ErrConflict", err)
	}
}

func TestDescriptorRepositoryIntegration_GetByPostAndDelete(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := setupRepo(t)
	defer cleanup()

	postID := int64(7)
	var ids []int64
	for i := 0; i < 3; i++ {
		d := newPendingDescriptor(fmt.Sprintf("user-%d", i))
		d.PostID = &postID
		if err := repo.InsertPending(ctx, d); err != nil {
			t.Fatalf("InsertPending #%d: %v", i, err)
		}
		ids = append(ids, d.ID)
	}
	// one descriptor on another post must not show up
	other := newPendingDescriptor("outsider")
	otherPost := int64(8)
	other.PostID = &otherPost
	if err := repo.InsertPending(ctx, other); err != nil {
		t.Fatalf("InsertPending other: %v", err)
	}

	list, err := repo.GetByPost(ctx, postID)
	if err != nil {
		t.Fatalf("GetByPost: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("GetByPost returned %d rows; want 3", len(list))
	}
	for i, d := range list {
		if d.ID != ids[i] {
			t.Errorf("row %d id = %d; want %d (insert order)", i, d.ID, ids[i])
		}
	}

	if err := repo.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, ids[0]); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetByID after delete err = %v; want sql.ErrNoRows", err)
	}
}
