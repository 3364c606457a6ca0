package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/chexseeds/chexseeds-backend/internal/cart"
	"github.com/chexseeds/chexseeds-backend/internal/notifications"
	"github.com/chexseeds/chexseeds-backend/internal/orders"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
	"github.com/chexseeds/chexseeds-backend/pkg/metrics"
)

// Notification steps get their own deadline so a slow provider cannot hold
// the submission open indefinitely.
const notifyStepTimeout = 15 * time.Second

// OrderCreator persists a submission as an order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error)
}

// EmailNotifier delivers the merchant and customer order emails.
type EmailNotifier interface {
	SendOrderEmails(ctx context.Context, order *models.Order) (notifications.EmailReceipt, error)
}

// WhatsAppNotifier pushes the order alert to the merchant's WhatsApp.
type WhatsAppNotifier interface {
	NotifyOrder(ctx context.Context, order *models.Order) (string, error)
}

// Submission is the mutable state threaded through the pipeline.
type Submission struct {
	SessionID string
	Customer  cart.CustomerInfo
	Items     []cart.Item

	Order       *models.Order
	Email       notifications.EmailReceipt
	WhatsAppSID string
	Warnings    []Warning
}

// Result is what a completed submission returns to the API layer.
type Result struct {
	Order    *models.Order              `json:"order"`
	Email    notifications.EmailReceipt `json:"email"`
	Warnings []Warning                  `json:"warnings,omitempty"`
}

// Flow drives order submission: persist first, then best-effort
// notifications, then clear the cart.
type Flow struct {
	pipeline *Pipeline
	orders   OrderCreator
	emails   EmailNotifier
	whatsapp WhatsAppNotifier
	metrics  *metrics.CheckoutMetrics
	log      *logger.Logger
}

// NewFlow wires the submission pipeline. Notification services may be nil
// when a channel is disabled; persistence is mandatory.
func NewFlow(orderSvc OrderCreator, emails EmailNotifier, whatsapp WhatsAppNotifier, checkoutMetrics *metrics.CheckoutMetrics, log *logger.Logger) (*Flow, error) {
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	f := &Flow{
		orders:   orderSvc,
		emails:   emails,
		whatsapp: whatsapp,
		metrics:  checkoutMetrics,
		log:      log,
	}

	steps := []Step{{
		Name:     "persist-order",
		Required: true,
		Run:      f.persistOrder,
	}}
	if emails != nil {
		steps = append(steps, Step{Name: "send-confirmation-emails", Timeout: notifyStepTimeout, Run: f.sendEmails})
	}
	if whatsapp != nil {
		steps = append(steps, Step{Name: "notify-whatsapp", Timeout: notifyStepTimeout, Run: f.notifyWhatsApp})
	}

	pipeline, err := NewPipeline(steps...)
	if err != nil {
		return nil, err
	}
	f.pipeline = pipeline
	return f, nil
}

// Submit runs the full submission for the session's cart. On a required
// failure the cart is left intact so the customer can retry.
func (f *Flow) Submit(ctx context.Context, store *cart.Store) (*Result, error) {
	state := store.State()
	if len(state.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := ValidateCustomerInfo(state.Checkout.CustomerInfo); err != nil {
		return nil, err
	}
	if !store.TrySetSubmitting() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "submission already in progress")
	}

	sub := &Submission{
		Customer: state.Checkout.CustomerInfo,
		Items:    state.Items,
	}
	softErrs, err := f.pipeline.Execute(ctx, sub)
	if err != nil {
		store.SetSubmitting(false)
		return nil, err
	}

	ctx = f.log.WithOrderNumber(ctx, sub.Order.OrderNumber)
	f.metrics.IncOrdersCreated()
	for _, warning := range sub.Warnings {
		f.metrics.IncNotificationFailure(warning.Step)
	}
	if softErrs != nil {
		f.log.Error(ctx, "order submitted with notification failures", softErrs)
	}

	if err := store.CompleteOrder(ctx); err != nil {
		// The order is already committed; a stale cart snapshot is the
		// lesser problem, so report success and log the cleanup failure.
		f.log.Error(ctx, "clear cart after order", err)
	}
	f.log.Info(ctx, "order submitted")

	return &Result{Order: sub.Order, Email: sub.Email, Warnings: sub.Warnings}, nil
}

func (f *Flow) persistOrder(ctx context.Context, sub *Submission) error {
	order, err := f.orders.CreateOrder(ctx, buildOrderInput(sub))
	if err != nil {
		return err
	}
	sub.Order = order
	return nil
}

func (f *Flow) sendEmails(ctx context.Context, sub *Submission) error {
	receipt, err := f.emails.SendOrderEmails(ctx, sub.Order)
	sub.Email = receipt
	return err
}

func (f *Flow) notifyWhatsApp(ctx context.Context, sub *Submission) error {
	sid, err := f.whatsapp.NotifyOrder(ctx, sub.Order)
	if err != nil {
		return err
	}
	sub.WhatsAppSID = sid
	return nil
}

func buildOrderInput(sub *Submission) orders.CreateOrderInput {
	input := orders.CreateOrderInput{
		CustomerName:       sub.Customer.FullName,
		CustomerEmail:      sub.Customer.Email,
		CustomerPhone:      sub.Customer.Phone,
		ShippingAddress:    sub.Customer.Address,
		ShippingCity:       sub.Customer.City,
		ShippingPostalCode: sub.Customer.PostalCode,
	}
	if sub.Customer.Notes != "" {
		notes := sub.Customer.Notes
		input.Notes = &notes
	}
	for _, item := range sub.Items {
		orderItem := orders.OrderItemInput{
			ProductID:    item.ID,
			ProductName:  item.Name,
			ProductImage: item.Image,
			Quantity:     item.Quantity,
			UnitPrice:    item.Price,
		}
		if item.Subtitle != "" {
			subtitle := item.Subtitle
			orderItem.ProductSubtitle = &subtitle
		}
		if item.THC != "" {
			thc := item.THC
			orderItem.THC = &thc
		}
		if item.Genotype != "" {
			genotype := item.Genotype
			orderItem.Genotype = &genotype
		}
		if item.Color != "" {
			color := item.Color
			orderItem.Color = &color
		}
		input.Items = append(input.Items, orderItem)
	}
	return input
}
