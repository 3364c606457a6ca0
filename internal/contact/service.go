package contact

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/chexseeds/chexseeds-backend/pkg/config"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
)

var deliverableEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type emailForwarder interface {
	SendContactEmail(ctx context.Context, msg *models.ContactMessage, recipient string) (string, error)
}

// SubmitInput is a raw contact-form payload.
type SubmitInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Service archives contact messages and forwards them by email.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.ContactMessage, error)
}

type service struct {
	repo   Repository
	emails emailForwarder
	cfg    config.ContactConfig
}

// NewService wires contact-form dependencies.
func NewService(repo Repository, emails emailForwarder, cfg config.ContactConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	if emails == nil {
		return nil, fmt.Errorf("email service required")
	}
	return &service{repo: repo, emails: emails, cfg: cfg}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.ContactMessage, error) {
	if err := validateSubmit(input); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive contact message")
	}

	if _, err := s.emails.SendContactEmail(ctx, msg, s.cfg.RecipientEmail); err != nil {
		return nil, err
	}
	return msg, nil
}

func validateSubmit(input SubmitInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if strings.TrimSpace(input.Subject) == "" {
		details["subject"] = "required"
	}
	if strings.TrimSpace(input.Message) == "" {
		details["message"] = "required"
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		details["email"] = "required"
	} else if !deliverableEmail.MatchString(email) {
		details["email"] = "invalid format"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact form incomplete").WithDetails(details)
	}
	return nil
}
