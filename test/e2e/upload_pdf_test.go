package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/test/testutil"
)

func TestUploadPDFE2E(t *testing.T) {
	ctx := context.Background()
	h, cleanup := setupPipeline(t)
	defer cleanup()

	content := testutil.GeneratePDF(t, 4)
	ticket := h.mintAndUpload(t, "application/pdf", content)
	if ticket.MediaType != model.MediaTypeDocument {
		t.Fatalf("ticket media type = %q; want document", ticket.MediaType)
	}

	out := h.complete(t, ticket, "application/pdf", len(content))

	st := h.waitForReady(t, out.DescriptorID)
	if st.Status != model.StatusReady {
		t.Fatalf("final status = %q (error %v); want ready", st.Status, st.Error)
	}
	// documents produce no public variants
	if st.VariantCount != 0 {
		t.Errorf("variant count = %d; want 0 for a document", st.VariantCount)
	}

	// the original must still be a readable PDF in the private bucket,
	// whether or not the optimiser managed to shrink it
	rc, err := GlobalStrg.GetFile(ctx, testutil.PrivateBucket, ticket.BlobName)
	if err != nil {
		t.Fatalf("original blob missing: %v", err)
	}
	defer rc.Close()
	size, err := rc.Seek(0, 2)
	if err != nil {
		t.Fatalf("seek original: %v", err)
	}
	if _, err := rc.Seek(0, 0); err != nil {
		t.Fatalf("rewind original: %v", err)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read original: %v", err)
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), size)
	if err != nil {
		t.Fatalf("stored blob is not a valid PDF: %v", err)
	}
	if pages := reader.NumPage(); pages != 4 {
		t.Errorf("stored PDF has %d pages; want 4", pages)
	}

	// nothing leaked into the public bucket
	keys, err := GlobalStrg.ListFiles(ctx, testutil.PublicBucket, "", 10)
	if err != nil {
		t.Fatalf("list public bucket: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("public bucket contains %v; want it empty", keys)
	}

	resp, err := http.Get(h.srv.URL + "/media/" + fmtID(out.DescriptorID))
	if err != nil {
		t.Fatalf("descriptor request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("descriptor status = %d; want %d", resp.StatusCode, http.StatusOK)
	}
	var desc struct {
		Status   model.Status   `json:"status"`
		Variants model.Variants `json:"variants"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		t.Fatalf("decode descriptor: %v", err)
	}
	if desc.Status != model.StatusReady {
		t.Errorf("descriptor status = %q; want ready", desc.Status)
	}
	if len(desc.Variants) != 0 {
		t.Errorf("descriptor variants = %v; want none", desc.Variants)
	}
}
