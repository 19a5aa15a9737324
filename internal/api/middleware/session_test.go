package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lexcards/lexcards-api/internal/api/middleware"
	"github.com/lexcards/lexcards-api/internal/api/shared"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware(t *testing.T) {
	t.Parallel()

	nextOwner := ""
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextOwner = shared.GetOwner(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.SessionMiddleware(next)

	t.Run("valid owner reaches the handler", func(t *testing.T) {
		session, err := domain.NewSession("maria")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/cards", nil)
		req.Header.Set(middleware.OwnerHeader, session.Owner())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, session.Owner(), nextOwner)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cards", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed owner is rejected", func(t *testing.T) {
		for _, owner := range []string{"maria", "maria_nope", "Maria_11111111-2222-3333-4444-555555555555"} {
			req := httptest.NewRequest(http.MethodGet, "/cards", nil)
			req.Header.Set(middleware.OwnerHeader, owner)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code, "owner %q", owner)
		}
	})
}

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var gotTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = shared.GetTraceID(r.Context())
	})
	handler := middleware.TraceMiddleware(next)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, gotTraceID)
	first := gotTraceID

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEqual(t, first, gotTraceID, "each request gets its own trace ID")
}
