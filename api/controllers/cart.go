package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chexseeds/chexseeds-backend/api/middleware"
	"github.com/chexseeds/chexseeds-backend/api/responses"
	"github.com/chexseeds/chexseeds-backend/api/validators"
	"github.com/chexseeds/chexseeds-backend/internal/cart"
	product "github.com/chexseeds/chexseeds-backend/internal/products"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

func sessionStore(ctx context.Context, manager *cart.Manager) (*cart.Store, error) {
	sessionID := middleware.CartSessionFromContext(ctx)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	store, err := manager.Store(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return store, nil
}

// GetCart returns the session's full cart state.
func GetCart(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.State())
	}
}

// AddCartItem snapshots the product from the catalog and adds it to the cart.
func AddCartItem(manager *cart.Manager, catalog product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := catalog.GetByID(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := cart.Item{
			ID:        found.ID,
			Name:      found.Name,
			Subtitle:  found.Subtitle,
			Price:     found.Price,
			Image:     found.Image,
			Color:     found.Color,
			THC:       found.THC,
			Flowering: found.Flowering,
			Genotype:  found.Genotype,
		}
		if err := store.AddItem(r.Context(), item); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item"))
			return
		}
		responses.WriteSuccess(w, store.State())
	}
}

// UpdateCartItem sets a line's quantity; zero removes it.
func UpdateCartItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productID")
		if !store.Contains(productID) && payload.Quantity > 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart"))
			return
		}
		if err := store.UpdateQuantity(r.Context(), productID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item"))
			return
		}
		responses.WriteSuccess(w, store.State())
	}
}

// RemoveCartItem drops a line entirely.
func RemoveCartItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.RemoveItem(r.Context(), chi.URLParam(r, "productID")); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item"))
			return
		}
		responses.WriteSuccess(w, store.State())
	}
}

// ClearCart empties the session's cart.
func ClearCart(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.ClearCart(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart"))
			return
		}
		responses.WriteSuccess(w, store.State())
	}
}
