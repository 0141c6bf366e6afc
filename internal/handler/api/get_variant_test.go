package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linkhive/media-pipeline-go/internal/api_context"
	"github.com/linkhive/media-pipeline-go/internal/mock"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"

	"github.com/go-chi/chi/v5"
)

func variantRequest(t *testing.T, id int64, purpose string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/media/42/variant/"+purpose, nil)
	req = req.WithContext(context.WithValue(req.Context(), api_context.DescriptorIDKey, id))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("purpose", purpose)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetVariantHandler(t *testing.T) {
	tests := []struct {
		name             string
		purpose          string
		svcErr           error
		wantStatus       int
		wantBodyContains string
	}{
		{
			name:             "happy path",
			purpose:          "feed",
			wantStatus:       http.StatusOK,
			wantBodyContains: "https://cdn.example.com/image_x_feed_v1.webp",
		},
		{
			name:             "unknown purpose",
			purpose:          "gigantic",
			svcErr:           media.ErrBadPurpose,
			wantStatus:       http.StatusBadRequest,
			wantBodyContains: "does not exist",
		},
		{
			name:             "still processing",
			purpose:          "feed",
			svcErr:           media.ErrNotReady,
			wantStatus:       http.StatusConflict,
			wantBodyContains: "not ready",
		},
		{
			name:             "variant missing",
			purpose:          "720p",
			svcErr:           media.ErrNotFound,
			wantStatus:       http.StatusNotFound,
			wantBodyContains: "Variant not found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.VariantGetter{Out: "https://cdn.example.com/image_x_feed_v1.webp", Err: tc.svcErr}
			handlerFn := GetVariantHandler(svc)

			rec := httptest.NewRecorder()
			handlerFn(rec, variantRequest(t, 42, tc.purpose))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body=%q)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.wantBodyContains) {
				t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBodyContains)
			}
			if tc.wantStatus == http.StatusOK {
				if svc.PurposeIn != model.PurposeFeed || svc.IDIn != 42 {
					t.Errorf("svc got (%d, %q)", svc.IDIn, svc.PurposeIn)
				}
			}
		})
	}
}
