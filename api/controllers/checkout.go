package controllers

import (
	"net/http"

	"github.com/chexseeds/chexseeds-backend/api/responses"
	"github.com/chexseeds/chexseeds-backend/api/validators"
	"github.com/chexseeds/chexseeds-backend/internal/cart"
	"github.com/chexseeds/chexseeds-backend/internal/checkout"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
)

type setStepRequest struct {
	Step int `json:"step" validate:"required,oneof=1 2"`
}

// UpdateCustomerInfo merges step-1 form fields into the checkout state.
func UpdateCustomerInfo(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cart.CustomerInfoPatch
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.UpdateCustomerInfo(payload)
		responses.WriteSuccess(w, store.State().Checkout)
	}
}

// SetCheckoutStep moves the wizard; advancing to step 2 revalidates the form
// and the cart.
func SetCheckoutStep(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setStepRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := checkout.Advance(store, payload.Step); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.State().Checkout)
	}
}

// ResetCheckout returns the wizard to its initial state.
func ResetCheckout(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.ResetCheckout()
		responses.WriteSuccess(w, store.State().Checkout)
	}
}

// SubmitOrder runs the full submission pipeline for the session's cart.
func SubmitOrder(manager *cart.Manager, flow *checkout.Flow, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := flow.Submit(r.Context(), store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
