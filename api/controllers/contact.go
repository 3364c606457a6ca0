package controllers

import (
	"net/http"

	"github.com/chexseeds/chexseeds-backend/api/responses"
	"github.com/chexseeds/chexseeds-backend/api/validators"
	"github.com/chexseeds/chexseeds-backend/internal/contact"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SubmitContact archives a contact-form message and forwards it by email.
func SubmitContact(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		msg, err := svc.Submit(r.Context(), contact.SubmitInput{
			Name:    payload.Name,
			Email:   payload.Email,
			Subject: payload.Subject,
			Message: payload.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, msg)
	}
}
