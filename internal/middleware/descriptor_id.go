package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/linkhive/media-pipeline-go/internal/api_context"
	"github.com/linkhive/media-pipeline-go/internal/handler/api"

	"github.com/go-chi/chi/v5"
)

func WithDescriptorID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(r.Context(), w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			parsedID, err := strconv.ParseInt(id, 10, 64)
			if err != nil || parsedID <= 0 {
				api.WriteError(r.Context(), w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid descriptor id", id), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.DescriptorIDKey, parsedID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
