package api

import (
	"errors"
	"net/http"

	"github.com/linkhive/media-pipeline-go/internal/api_context"
	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

func GetDescriptorHandler(renderer port.HTTPRenderer, svc port.DescriptorGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.DescriptorIDFromContext(r.Context())
		if !ok {
			WriteError(r.Context(), w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		raw, etag, err := renderer.RenderGetDescriptor(r.Context(), svc, id)
		if err != nil {
			if errors.Is(err, media.ErrNotFound) {
				WriteError(r.Context(), w, http.StatusNotFound, "Media not found", nil)
				return
			}
			WriteError(r.Context(), w, http.StatusInternalServerError, "Could not get media descriptor", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached descriptor #%d", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned descriptor #%d", id)
	}
}
