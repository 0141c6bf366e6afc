package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
	"github.com/linkhive/media-pipeline-go/internal/validation"
)

type CompleteUploadRequest struct {
	UploadID  string `json:"upload_id" validate:"required,uuid"`
	BlobName  string `json:"blob_name" validate:"required,max=120"`
	MediaType string `json:"media_type" validate:"required,oneof=image video document"`
	MimeType  string `json:"mime_type" validate:"required,max=100"`
	SizeBytes int64  `json:"size_bytes" validate:"gte=0"`
	Owner     string `json:"owner,omitempty" validate:"max=80"`
}

func CompleteUploadHandler(svc port.UploadCompleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompleteUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(r.Context(), w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(r.Context(), w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		owner := resolveOwner(r, req.Owner)
		if owner == "" {
			WriteError(r.Context(), w, http.StatusUnauthorized, "owner is required", nil)
			return
		}

		out, err := svc.CompleteUpload(r.Context(), port.CompleteUploadInput{
			Owner:        owner,
			UploadID:     req.UploadID,
			BlobName:     req.BlobName,
			MediaType:    model.MediaType(req.MediaType),
			MimeType:     req.MimeType,
			DeclaredSize: req.SizeBytes,
		})
		if err != nil {
			switch {
			case errors.Is(err, media.ErrUnsupportedMedia):
				WriteError(r.Context(), w, http.StatusBadRequest, "blob name or mime type is not acceptable", err)
			case errors.Is(err, media.ErrNotUploaded):
				WriteError(r.Context(), w, http.StatusBadRequest, "no blob was uploaded under this name", nil)
			case errors.Is(err, media.ErrTooLarge):
				WriteError(r.Context(), w, http.StatusRequestEntityTooLarge, "uploaded blob exceeds the cap for this media type", nil)
			case errors.Is(err, media.ErrConflict):
				WriteError(r.Context(), w, http.StatusConflict, "upload is already being completed", nil)
			default:
				WriteError(r.Context(), w, http.StatusInternalServerError, "Could not complete upload", err)
			}
			return
		}

		RespondJSON(w, http.StatusAccepted, out)
		logger.Infof(r.Context(), "✅  Successfully completed upload for descriptor #%d", out.DescriptorID)
	}
}
