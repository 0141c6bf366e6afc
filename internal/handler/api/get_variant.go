package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/linkhive/media-pipeline-go/internal/api_context"
	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"

	"github.com/go-chi/chi/v5"
)

type VariantURLResponse struct {
	URL string `json:"url"`
}

func GetVariantHandler(svc port.VariantGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.DescriptorIDFromContext(r.Context())
		if !ok {
			WriteError(r.Context(), w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		purpose := model.Purpose(chi.URLParam(r, "purpose"))

		url, err := svc.GetVariantURL(r.Context(), id, purpose)
		if err != nil {
			switch {
			case errors.Is(err, media.ErrBadPurpose):
				WriteError(r.Context(), w, http.StatusBadRequest, fmt.Sprintf("purpose %q does not exist", purpose), nil)
			case errors.Is(err, media.ErrNotFound):
				WriteError(r.Context(), w, http.StatusNotFound, "Variant not found", nil)
			case errors.Is(err, media.ErrNotReady):
				WriteError(r.Context(), w, http.StatusConflict, "Media is not ready yet", nil)
			default:
				WriteError(r.Context(), w, http.StatusInternalServerError, "Could not resolve variant URL", err)
			}
			return
		}

		// the URL is stable for a descriptor version, clients may hold on to it
		w.Header().Set("Cache-Control", "public, max-age=300")
		RespondJSON(w, http.StatusOK, VariantURLResponse{URL: url})
		logger.Infof(r.Context(), "✅  Successfully resolved variant %q for descriptor #%d", purpose, id)
	}
}
