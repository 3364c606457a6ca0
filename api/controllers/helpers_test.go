package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chexseeds/chexseeds-backend/api/middleware"
	"github.com/chexseeds/chexseeds-backend/internal/cart"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
	"github.com/chexseeds/chexseeds-backend/pkg/types"
)

type memoryPersister struct {
	snaps map[string]cart.Snapshot
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{snaps: map[string]cart.Snapshot{}}
}

func (p *memoryPersister) Save(_ context.Context, sessionID string, snap cart.Snapshot) error {
	p.snaps[sessionID] = snap
	return nil
}

func (p *memoryPersister) Load(_ context.Context, sessionID string) (*cart.Snapshot, error) {
	snap, ok := p.snaps[sessionID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (p *memoryPersister) Delete(_ context.Context, sessionID string) error {
	delete(p.snaps, sessionID)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard})
}

func newCartManager(t *testing.T) *cart.Manager {
	t.Helper()
	manager, err := cart.NewManager(newMemoryPersister())
	require.NoError(t, err)
	return manager
}

// doSession routes the request through the cart session middleware the way
// the router does.
func doSession(handler http.HandlerFunc, req *http.Request, sessionID string) *httptest.ResponseRecorder {
	if sessionID != "" {
		req.Header.Set("X-Cart-Session", sessionID)
	}
	w := httptest.NewRecorder()
	middleware.CartSession(nil)(handler).ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, payload any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope types.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var envelope types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	return envelope.Error
}

func newSessionID() string { return uuid.NewString() }
