package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chexseeds/chexseeds-backend/api/responses"
	"github.com/chexseeds/chexseeds-backend/internal/orders"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
)

// GetOrder returns a persisted order by its public order number.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.GetByOrderNumber(r.Context(), chi.URLParam(r, "orderNumber"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
