package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	"github.com/linkhive/media-pipeline-go/internal/mock"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

const testUID = mediaid.ID("0123456789abcdef01234567")

func fixedMediaID() mediaid.ID { return testUID }
func fixedUploadID() string    { return "upload-123" }

func TestMintUploadTicket_Success(t *testing.T) {
	strg := &mock.Storage{}
	svc := NewTicketMinter(strg, "private", fixedMediaID, fixedUploadID, DefaultLimits())

	out, err := svc.MintUploadTicket(context.Background(), port.MintTicketInput{
		Owner:        "alice",
		MimeType:     "image/png",
		DeclaredSize: 1024,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantBlob := "image_0123456789abcdef01234567_v1.png"
	if out.BlobName != wantBlob {
		t.Errorf("BlobName = %q; want %q", out.BlobName, wantBlob)
	}
	if out.SignedURL != "https://example.com/upload/"+wantBlob {
		t.Errorf("SignedURL = %q", out.SignedURL)
	}
	if out.UploadID != "upload-123" {
		t.Errorf("UploadID = %q; want upload-123", out.UploadID)
	}
	if out.MediaID != testUID {
		t.Errorf("MediaID = %q; want %q", out.MediaID, testUID)
	}
	if out.MediaType != model.MediaTypeImage {
		t.Errorf("MediaType = %q; want image", out.MediaType)
	}
	if out.ExpiresInSeconds != 300 {
		t.Errorf("ExpiresInSeconds = %d; want 300", out.ExpiresInSeconds)
	}
	if strg.ObjectKey != wantBlob {
		t.Errorf("presigned key = %q; want %q", strg.ObjectKey, wantBlob)
	}
	if strg.ContentType != "image/png" {
		t.Errorf("presigned content type = %q; want image/png", strg.ContentType)
	}
	if strg.TTL != DefaultSignedURLTTL {
		t.Errorf("presign TTL = %v; want %v", strg.TTL, DefaultSignedURLTTL)
	}
}

func TestMintUploadTicket_UnsupportedMime(t *testing.T) {
	strg := &mock.Storage{}
	svc := NewTicketMinter(strg, "private", fixedMediaID, fixedUploadID, DefaultLimits())

	_, err := svc.MintUploadTicket(context.Background(), port.MintTicketInput{MimeType: "application/zip"})
	if !errors.Is(err, ErrUnsupportedMedia) {
		t.Errorf("expected ErrUnsupportedMedia, got %v", err)
	}
	if strg.GenerateUploadLinkCalled {
		t.Error("no URL should be presigned for an unsupported mime type")
	}
}

func TestMintUploadTicket_DeclaredSizeCaps(t *testing.T) {
	tests := []struct {
		mime    string
		size    int64
		wantErr bool
	}{
		{"image/png", DefaultMaxImageBytes + 1, true},
		{"image/png", DefaultMaxImageBytes, false},
		// 50MB is over the image cap but fine for a video
		{"video/mp4", 50 * 1024 * 1024, false},
		{"video/mp4", DefaultMaxVideoBytes + 1, true},
		{"application/pdf", DefaultMaxDocumentBytes + 1, true},
		// size 0 means the client did not declare one
		{"image/png", 0, false},
	}
	for _, tc := range tests {
		svc := NewTicketMinter(&mock.Storage{}, "private", fixedMediaID, fixedUploadID, DefaultLimits())
		_, err := svc.MintUploadTicket(context.Background(), port.MintTicketInput{MimeType: tc.mime, DeclaredSize: tc.size})
		if tc.wantErr && !errors.Is(err, ErrTooLarge) {
			t.Errorf("%s size %d: expected ErrTooLarge, got %v", tc.mime, tc.size, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s size %d: unexpected error: %v", tc.mime, tc.size, err)
		}
	}
}

func TestMintUploadTicket_PresignError(t *testing.T) {
	strg := &mock.Storage{GenerateUploadLinkErr: errors.New("minio down")}
	svc := NewTicketMinter(strg, "private", fixedMediaID, fixedUploadID, DefaultLimits())

	_, err := svc.MintUploadTicket(context.Background(), port.MintTicketInput{MimeType: "image/png"})
	if err == nil || !strings.Contains(err.Error(), "presign upload") {
		t.Errorf("expected presign error, got %v", err)
	}
}
