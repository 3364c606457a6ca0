package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"regexp"

	"go.uber.org/multierr"

	"github.com/chexseeds/chexseeds-backend/pkg/config"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
)

// deliverableEmail is intentionally loose: anything with a local part, a
// domain and a dot passes; the provider does the real verification.
var deliverableEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailMessage is a provider-agnostic outbound email.
type EmailMessage struct {
	From    string
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// EmailSender delivers a message and returns the provider message id.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (string, error)
}

// EmailReceipt reports what the confirmation step actually delivered.
type EmailReceipt struct {
	MerchantMessageID string `json:"merchantMessageId,omitempty"`
	CustomerMessageID string `json:"customerMessageId,omitempty"`
	CustomerSkipped   bool   `json:"customerSkipped"`
}

// EmailService renders and sends the merchant and customer order emails.
type EmailService struct {
	sender EmailSender
	cfg    config.EmailConfig
}

// NewEmailService wires the email channel.
func NewEmailService(sender EmailSender, cfg config.EmailConfig) (*EmailService, error) {
	if sender == nil {
		return nil, fmt.Errorf("email sender required")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("email from address required")
	}
	return &EmailService{sender: sender, cfg: cfg}, nil
}

// SendOrderEmails delivers the merchant notification and, when the customer
// address looks deliverable, the customer confirmation. Failures on one
// channel do not stop the other; all failures come back merged.
func (s *EmailService) SendOrderEmails(ctx context.Context, order *models.Order) (EmailReceipt, error) {
	if order == nil {
		return EmailReceipt{}, pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	if s.cfg.CompanyInbox == "" {
		return EmailReceipt{}, pkgerrors.New(pkgerrors.CodeConfig, "merchant inbox not configured")
	}

	var receipt EmailReceipt
	var errs error

	merchantHTML, err := renderTemplate(merchantOrderTemplate, order)
	if err != nil {
		errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render merchant email"))
	} else {
		id, err := s.sender.Send(ctx, EmailMessage{
			From:    s.cfg.FromAddress,
			To:      []string{s.cfg.CompanyInbox},
			Subject: fmt.Sprintf("🌱 Nueva orden de compra - %s", order.OrderNumber),
			HTML:    merchantHTML,
			ReplyTo: order.CustomerEmail,
		})
		if err != nil {
			errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send merchant email"))
		} else {
			receipt.MerchantMessageID = id
		}
	}

	if !deliverableEmail.MatchString(order.CustomerEmail) {
		receipt.CustomerSkipped = true
		return receipt, errs
	}

	customerHTML, err := renderTemplate(customerOrderTemplate, order)
	if err != nil {
		return receipt, multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render customer email"))
	}
	id, err := s.sender.Send(ctx, EmailMessage{
		From:    s.cfg.FromAddress,
		To:      []string{order.CustomerEmail},
		Subject: fmt.Sprintf("✅ Confirmación de tu pedido - %s", order.OrderNumber),
		HTML:    customerHTML,
	})
	if err != nil {
		return receipt, multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send customer email"))
	}
	receipt.CustomerMessageID = id
	return receipt, errs
}

func renderTemplate(tmpl *template.Template, order *models.Order) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newOrderEmailData(order)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type orderEmailData struct {
	Order        *models.Order
	Notes        string
	Subtotal     string
	ShippingCost string
	Total        string
	FreeShipping bool
	Items        []orderEmailItem
}

type orderEmailItem struct {
	Name      string
	Subtitle  string
	Quantity  int
	UnitPrice string
	LineTotal string
}

func newOrderEmailData(order *models.Order) orderEmailData {
	data := orderEmailData{
		Order:        order,
		Subtotal:     formatCLP(order.Subtotal),
		ShippingCost: formatCLP(order.ShippingCost),
		Total:        formatCLP(order.Total),
		FreeShipping: order.ShippingCost.IsZero(),
	}
	if order.Notes != nil {
		data.Notes = *order.Notes
	}
	for _, item := range order.Items {
		subtitle := ""
		if item.ProductSubtitle != nil {
			subtitle = *item.ProductSubtitle
		}
		data.Items = append(data.Items, orderEmailItem{
			Name:      item.ProductName,
			Subtitle:  subtitle,
			Quantity:  item.Quantity,
			UnitPrice: formatCLP(item.UnitPrice),
			LineTotal: formatCLP(item.TotalPrice),
		})
	}
	return data
}

// SendContactEmail forwards a contact-form submission to the merchant inbox.
func (s *EmailService) SendContactEmail(ctx context.Context, msg *models.ContactMessage, recipient string) (string, error) {
	if msg == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "contact message required")
	}
	if recipient == "" {
		recipient = s.cfg.CompanyInbox
	}
	if recipient == "" {
		return "", pkgerrors.New(pkgerrors.CodeConfig, "contact recipient not configured")
	}

	var buf bytes.Buffer
	if err := contactMessageTemplate.Execute(&buf, msg); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render contact email")
	}

	id, err := s.sender.Send(ctx, EmailMessage{
		From:    s.cfg.FromAddress,
		To:      []string{recipient},
		Subject: fmt.Sprintf("📬 Contacto: %s", msg.Subject),
		HTML:    buf.String(),
		ReplyTo: msg.Email,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send contact email")
	}
	return id, nil
}
