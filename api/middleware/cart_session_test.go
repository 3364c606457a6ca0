package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSession_MintsWhenHeaderMissing(t *testing.T) {
	var captured string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = CartSessionFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	require.NotEmpty(t, captured)
	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
	assert.Equal(t, captured, w.Header().Get("X-Cart-Session"))
}

func TestCartSession_KeepsValidHeader(t *testing.T) {
	sessionID := uuid.NewString()
	var captured string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("X-Cart-Session", sessionID)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, sessionID, captured)
	assert.Equal(t, sessionID, w.Header().Get("X-Cart-Session"))
}

func TestCartSession_ReplacesMalformedHeader(t *testing.T) {
	var captured string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("X-Cart-Session", "not-a-uuid")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.NotEqual(t, "not-a-uuid", captured)
	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
}
