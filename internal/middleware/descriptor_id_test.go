package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linkhive/media-pipeline-go/internal/api_context"

	"github.com/go-chi/chi/v5"
)

func TestWithDescriptorID(t *testing.T) {
	var gotID int64
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = api_context.DescriptorIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := chi.NewRouter()
	r.With(WithDescriptorID()).Get("/media/{id}", next)

	cases := []struct {
		name       string
		path       string
		wantStatus int
		wantID     int64
	}{
		{"valid id", "/media/42", http.StatusOK, 42},
		{"non-numeric id", "/media/abc", http.StatusBadRequest, 0},
		{"negative id", "/media/-7", http.StatusBadRequest, 0},
		{"zero id", "/media/0", http.StatusBadRequest, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called = false
			gotID = 0

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if !called {
					t.Fatal("next handler not called")
				}
				if gotID != tc.wantID {
					t.Errorf("context id = %d; want %d", gotID, tc.wantID)
				}
			} else if called {
				t.Error("next handler should not run on a bad id")
			}
		})
	}
}
