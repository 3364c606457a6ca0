package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chexseeds/chexseeds-backend/internal/cart"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
)

type stubCatalog struct {
	products map[string]*models.Product
}

func (s *stubCatalog) ListProducts(context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubCatalog) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func testCatalog() *stubCatalog {
	return &stubCatalog{products: map[string]*models.Product{
		"nl-auto": {ID: "nl-auto", Slug: "northern-lights-auto", Name: "Northern Lights Auto", Price: 12000, THC: "20%", IsActive: true},
		"ak-47":   {ID: "ak-47", Slug: "ak-47", Name: "AK-47", Price: 15000, IsActive: true},
	}}
}

func TestGetCart_EmptySession(t *testing.T) {
	manager := newCartManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := doSession(GetCart(manager, testLogger()), req, newSessionID())

	require.Equal(t, http.StatusOK, w.Code)
	var state cart.State
	decodeData(t, w, &state)
	assert.Empty(t, state.Items)
	assert.Equal(t, 1, state.Checkout.Step)
}

func TestAddCartItem_SnapshotsProduct(t *testing.T) {
	manager := newCartManager(t)
	session := newSessionID()
	handler := AddCartItem(manager, testCatalog(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", jsonBody(t, map[string]string{"productId": "nl-auto"}))
	w := doSession(handler, req, session)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/cart/items", jsonBody(t, map[string]string{"productId": "nl-auto"}))
	w = doSession(handler, req, session)
	require.Equal(t, http.StatusOK, w.Code)

	var state cart.State
	decodeData(t, w, &state)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, "Northern Lights Auto", state.Items[0].Name)
	assert.Equal(t, "20%", state.Items[0].THC)
	assert.Equal(t, int64(24000), state.TotalPrice)
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	manager := newCartManager(t)
	handler := AddCartItem(manager, testCatalog(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", jsonBody(t, map[string]string{"productId": "missing"}))
	w := doSession(handler, req, newSessionID())

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(pkgerrors.CodeNotFound), decodeError(t, w).Code)
}

func TestAddCartItem_MissingProductID(t *testing.T) {
	manager := newCartManager(t)
	handler := AddCartItem(manager, testCatalog(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{}`))
	w := doSession(handler, req, newSessionID())

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItem(t *testing.T) {
	manager := newCartManager(t)
	session := newSessionID()

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", jsonBody(t, map[string]string{"productId": "nl-auto"}))
	doSession(AddCartItem(manager, testCatalog(), testLogger()), req, session)

	router := chi.NewRouter()
	router.Patch("/api/cart/items/{productID}", UpdateCartItem(manager, testLogger()))

	req = httptest.NewRequest(http.MethodPatch, "/api/cart/items/nl-auto", jsonBody(t, map[string]int{"quantity": 5}))
	w := doSession(router.ServeHTTP, req, session)
	require.Equal(t, http.StatusOK, w.Code)

	var state cart.State
	decodeData(t, w, &state)
	assert.Equal(t, 5, state.TotalItems)

	// unknown line with positive quantity is a 404
	req = httptest.NewRequest(http.MethodPatch, "/api/cart/items/ghost", jsonBody(t, map[string]int{"quantity": 2}))
	w = doSession(router.ServeHTTP, req, session)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// zero quantity removes the line
	req = httptest.NewRequest(http.MethodPatch, "/api/cart/items/nl-auto", jsonBody(t, map[string]int{"quantity": 0}))
	w = doSession(router.ServeHTTP, req, session)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &state)
	assert.Empty(t, state.Items)
}

func TestRemoveAndClearCart(t *testing.T) {
	manager := newCartManager(t)
	session := newSessionID()
	add := AddCartItem(manager, testCatalog(), testLogger())

	for _, id := range []string{"nl-auto", "ak-47"} {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/items", jsonBody(t, map[string]string{"productId": id}))
		doSession(add, req, session)
	}

	router := chi.NewRouter()
	router.Delete("/api/cart/items/{productID}", RemoveCartItem(manager, testLogger()))

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/nl-auto", nil)
	w := doSession(router.ServeHTTP, req, session)
	require.Equal(t, http.StatusOK, w.Code)

	var state cart.State
	decodeData(t, w, &state)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "ak-47", state.Items[0].ID)

	req = httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	w = doSession(ClearCart(manager, testLogger()), req, session)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &state)
	assert.Empty(t, state.Items)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	manager := newCartManager(t)
	add := AddCartItem(manager, testCatalog(), testLogger())

	first := newSessionID()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", jsonBody(t, map[string]string{"productId": "nl-auto"}))
	doSession(add, req, first)

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := doSession(GetCart(manager, testLogger()), req, newSessionID())

	var state cart.State
	decodeData(t, w, &state)
	assert.Empty(t, state.Items)
}
