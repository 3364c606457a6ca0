package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
)

func TestListProducts(t *testing.T) {
	handler := ListProducts(testCatalog(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	decodeData(t, w, &products)
	assert.Len(t, products, 2)
}

func TestGetProduct_BySlug(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/products/{slug}", GetProduct(testCatalog(), testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/products/northern-lights-auto", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var found models.Product
	decodeData(t, w, &found)
	assert.Equal(t, "nl-auto", found.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
