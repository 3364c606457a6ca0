package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/chexseeds/chexseeds-backend/pkg/config"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
)

// MessageSender delivers one WhatsApp text and returns the provider sid.
type MessageSender interface {
	Send(ctx context.Context, from, to, body string) (string, error)
}

// WhatsAppService pushes the new-order alert to the merchant's WhatsApp.
type WhatsAppService struct {
	sender MessageSender
	cfg    config.WhatsAppConfig
}

// NewWhatsAppService wires the WhatsApp channel. A nil sender is allowed so
// the service can still report missing credentials cleanly.
func NewWhatsAppService(sender MessageSender, cfg config.WhatsAppConfig) *WhatsAppService {
	return &WhatsAppService{sender: sender, cfg: cfg}
}

// NotifyOrder sends the order summary to the configured merchant number.
func (s *WhatsAppService) NotifyOrder(ctx context.Context, order *models.Order) (string, error) {
	if order == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	if s.sender == nil || !s.cfg.Complete() {
		return "", pkgerrors.New(pkgerrors.CodeConfig, "whatsapp credentials not configured")
	}

	sid, err := s.sender.Send(ctx, whatsAppAddress(s.cfg.SenderNumber), whatsAppAddress(s.cfg.ClientNumber), orderMessageBody(order))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send whatsapp message")
	}
	return sid, nil
}

func whatsAppAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

func orderMessageBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌱 *Nueva orden* %s\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "*Cliente:* %s\n", order.CustomerName)
	fmt.Fprintf(&b, "*Teléfono:* %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "*Dirección:* %s, %s\n\n", order.ShippingAddress, order.ShippingCity)

	b.WriteString("*Productos:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %d × %s (%s)\n", item.Quantity, item.ProductName, formatCLP(item.TotalPrice))
	}

	fmt.Fprintf(&b, "\n*Envío:* %s\n", shippingLabel(order))
	fmt.Fprintf(&b, "*Total:* %s", formatCLP(order.Total))
	return b.String()
}

func shippingLabel(order *models.Order) string {
	if order.ShippingCost.IsZero() {
		return "Gratis"
	}
	return formatCLP(order.ShippingCost)
}
