package api

import (
	"errors"
	"net/http"

	"github.com/linkhive/media-pipeline-go/internal/api_context"
	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

// DeleteMediaHandler deletes a media by descriptor id: derived blobs first,
// then the original, then the row.
func DeleteMediaHandler(svc port.MediaDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.DescriptorIDFromContext(r.Context())
		if !ok {
			WriteError(r.Context(), w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteMedia(r.Context(), id); err != nil {
			if errors.Is(err, media.ErrNotFound) {
				WriteError(r.Context(), w, http.StatusNotFound, "Media not found", nil)
				return
			}
			WriteError(r.Context(), w, http.StatusInternalServerError, "Failed to delete media", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted media #%d", id)
	}
}
