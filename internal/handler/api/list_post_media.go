package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"

	"github.com/go-chi/chi/v5"
)

// ListPostMediaHandler returns the descriptors attached to one post, in
// insert order, for the feed layer to embed.
func ListPostMediaHandler(svc port.PostMediaLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "postID")
		postID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || postID <= 0 {
			WriteError(r.Context(), w, http.StatusBadRequest, fmt.Sprintf("post ID %q is not valid", raw), nil)
			return
		}

		out, err := svc.ListPostMedia(r.Context(), postID)
		if err != nil {
			WriteError(r.Context(), w, http.StatusInternalServerError, "Could not list post media", err)
			return
		}
		if out == nil {
			out = []*model.MediaDescriptor{}
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully listed %d media for post #%d", len(out), postID)
	}
}
