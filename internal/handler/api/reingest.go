package api

import (
	"errors"
	"net/http"

	"github.com/linkhive/media-pipeline-go/internal/api_context"
	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

// ReingestHandler re-enters processing for a ready or failed media. Only
// the owner (or an admin) may trigger it.
func ReingestHandler(svc port.Reingester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.DescriptorIDFromContext(r.Context())
		if !ok {
			WriteError(r.Context(), w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		owner, _ := api_context.AuthOwnerFromContext(r.Context())
		if roles, ok := api_context.AuthRolesFromContext(r.Context()); ok {
			for _, role := range roles {
				if role == "admin" {
					// admins act on any owner's media
					owner = ""
					break
				}
			}
		}

		if err := svc.Reingest(r.Context(), id, owner); err != nil {
			switch {
			case errors.Is(err, media.ErrNotFound):
				WriteError(r.Context(), w, http.StatusNotFound, "Media not found", nil)
			case errors.Is(err, media.ErrUnauthorized):
				WriteError(r.Context(), w, http.StatusForbidden, "You do not own this media", nil)
			case errors.Is(err, media.ErrConflict):
				WriteError(r.Context(), w, http.StatusConflict, "Media cannot be re-ingested in its current state", nil)
			default:
				WriteError(r.Context(), w, http.StatusInternalServerError, "Could not re-ingest media", err)
			}
			return
		}

		w.WriteHeader(http.StatusAccepted)
		logger.Infof(r.Context(), "✅  Successfully queued re-ingest of media #%d", id)
	}
}
