package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/linkhive/media-pipeline-go/internal/api_context"
	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
	"github.com/linkhive/media-pipeline-go/internal/validation"
)

type MintUploadTicketRequest struct {
	MimeType  string `json:"mime_type" validate:"required,max=100"`
	SizeBytes int64  `json:"size_bytes" validate:"gte=0"`
	// Owner is only honoured when auth is disabled (local development).
	Owner string `json:"owner,omitempty" validate:"max=80"`
}

func MintUploadTicketHandler(svc port.TicketMinter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MintUploadTicketRequest
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

			// return the validation errors payload directly
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		owner := resolveOwner(r, req.Owner)
		if owner == "" {
			WriteError(r.Context(), w, http.StatusUnauthorized, "owner is required", nil)
			return
		}

		out, err := svc.MintUploadTicket(r.Context(), port.MintTicketInput{
			Owner:        owner,
			MimeType:     req.MimeType,
			DeclaredSize: req.SizeBytes,
		})
		if err != nil {
			switch {
			case errors.Is(err, media.ErrUnsupportedMedia):
				WriteError(r.Context(), w, http.StatusUnsupportedMediaType, fmt.Sprintf("mime type %q is not supported", req.MimeType), nil)
			case errors.Is(err, media.ErrTooLarge):
				WriteError(r.Context(), w, http.StatusRequestEntityTooLarge, "declared size exceeds the cap for this media type", nil)
			default:
				WriteError(r.Context(), w, http.StatusInternalServerError, "Could not mint upload ticket", err)
			}
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		logger.Infof(r.Context(), "✅  Successfully minted upload ticket for media #%s", out.MediaID)
	}
}

// resolveOwner prefers the authenticated principal; the request field only
// counts when the auth middleware ran in passthrough mode.
func resolveOwner(r *http.Request, fallback string) string {
	if owner, ok := api_context.AuthOwnerFromContext(r.Context()); ok && owner != "" {
		return owner
	}
	return fallback
}
