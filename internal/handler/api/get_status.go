package api

import (
	"errors"
	"net/http"

	"github.com/linkhive/media-pipeline-go/internal/api_context"
	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

// GetStatusHandler serves processing progress for polling clients. The
// response is never cacheable: a pending poll that cached would mask the
// transition to ready.
func GetStatusHandler(svc port.StatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.DescriptorIDFromContext(r.Context())
		if !ok {
			WriteError(r.Context(), w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.GetStatus(r.Context(), id)
		if err != nil {
			if errors.Is(err, media.ErrNotFound) {
				WriteError(r.Context(), w, http.StatusNotFound, "Media not found", nil)
				return
			}
			WriteError(r.Context(), w, http.StatusInternalServerError, "Could not get media status", err)
			return
		}

		w.Header().Set("Cache-Control", "no-cache")
		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully returned status for descriptor #%d", id)
	}
}
