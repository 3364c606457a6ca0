package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chexseeds/chexseeds-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test"}}
}

func TestHealthLive(t *testing.T) {
	w := httptest.NewRecorder()
	HealthLive(testConfig()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", w.Header().Get("X-ChexSeeds-Env"))
}

func TestHealthReady(t *testing.T) {
	handler := HealthReady(testConfig(), testLogger(), stubPinger{}, stubPinger{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthReady_DependencyDown(t *testing.T) {
	handler := HealthReady(testConfig(), testLogger(), stubPinger{err: errors.New("no db")}, stubPinger{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
