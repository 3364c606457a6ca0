package controllers

import (
	"context"
	"net/http"

	"github.com/chexseeds/chexseeds-backend/api/responses"
	"github.com/chexseeds/chexseeds-backend/api/validators"
	"github.com/chexseeds/chexseeds-backend/internal/notifications"
	"github.com/chexseeds/chexseeds-backend/internal/orders"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
)

type orderNumberRequest struct {
	OrderNumber string `json:"orderNumber" validate:"required"`
}

// OrderEmailSender delivers the merchant and customer order emails.
type OrderEmailSender interface {
	SendOrderEmails(ctx context.Context, order *models.Order) (notifications.EmailReceipt, error)
}

// OrderConfirmation re-sends the merchant and customer emails for an
// already-persisted order.
func OrderConfirmation(orderSvc orders.Service, emails OrderEmailSender, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if emails == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfig, "email channel not configured"))
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
		receipt, err := emails.SendOrderEmails(ctx, order)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, receipt)
	}
}
