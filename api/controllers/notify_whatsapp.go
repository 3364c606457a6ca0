package controllers

import (
	"context"
	"net/http"

	"github.com/chexseeds/chexseeds-backend/api/responses"
	"github.com/chexseeds/chexseeds-backend/api/validators"
	"github.com/chexseeds/chexseeds-backend/internal/orders"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
)

// WhatsAppNotifier pushes an order alert over WhatsApp.
type WhatsAppNotifier interface {
	NotifyOrder(ctx context.Context, order *models.Order) (string, error)
}

// NotifyWhatsApp pushes the order summary to the merchant's WhatsApp.
func NotifyWhatsApp(orderSvc orders.Service, notifier WhatsAppNotifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notifier == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfig, "whatsapp channel not configured"))
			return
		}

		var payload orderNumberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := orderSvc.GetByOrderNumber(r.Context(), payload.OrderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithOrderNumber(r.Context(), order.OrderNumber)
		sid, err := notifier.NotifyOrder(ctx, order)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"messageSid": sid})
	}
}
