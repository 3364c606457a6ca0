package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/chexseeds/chexseeds-backend/pkg/db"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	"github.com/chexseeds/chexseeds-backend/pkg/enums"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type numberGenerator interface {
	Generate() string
}

// Service persists checkout submissions as orders.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	numbers numberGenerator
	pricing Pricing
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, numbers numberGenerator, pricing Pricing) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("order number generator required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		numbers: numbers,
		pricing: pricing,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := validateCreateOrder(input); err != nil {
		return nil, err
	}

	subtotal, shipping, total := s.pricing.Quote(input.Items)

	// The order number carries a random suffix, so a collision is a freak
	// event. One regenerate covers it; a second collision surfaces as a
	// conflict for the caller to retry.
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		order := buildOrder(input, s.numbers.Generate(), subtotal, shipping, total)
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			if err := repo.CreateOrder(ctx, order); err != nil {
				return err
			}
			return repo.CreateOrderItems(ctx, order.Items)
		})
		if err == nil {
			return order, nil
		}
		if !db.IsUniqueViolation(err, "orders_order_number_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}
		lastErr = err
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, lastErr, "order number collision")
}

func (s *service) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func validateCreateOrder(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.ProductName == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item missing product identity")
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item quantity must be positive")
		}
		if item.UnitPrice < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item price cannot be negative")
		}
	}
	if input.CustomerName == "" || input.CustomerEmail == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name and email required")
	}
	return nil
}

func buildOrder(input CreateOrderInput, orderNumber string, subtotal, shipping, total int64) *models.Order {
	orderID := uuid.New()
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		lineTotal := item.UnitPrice * int64(item.Quantity)
		items = append(items, models.OrderItem{
			ID:              uuid.New(),
			OrderID:         orderID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductSubtitle: item.ProductSubtitle,
			ProductImage:    item.ProductImage,
			Quantity:        item.Quantity,
			UnitPrice:       decimal.NewFromInt(item.UnitPrice),
			TotalPrice:      decimal.NewFromInt(lineTotal),
			THC:             item.THC,
			Genotype:        item.Genotype,
			Color:           item.Color,
		})
	}
	return &models.Order{
		ID:                 orderID,
		OrderNumber:        orderNumber,
		UserID:             input.UserID,
		CustomerName:       input.CustomerName,
		CustomerEmail:      input.CustomerEmail,
		CustomerPhone:      input.CustomerPhone,
		ShippingAddress:    input.ShippingAddress,
		ShippingCity:       input.ShippingCity,
		ShippingPostalCode: input.ShippingPostalCode,
		Subtotal:           decimal.NewFromInt(subtotal),
		ShippingCost:       decimal.NewFromInt(shipping),
		Total:              decimal.NewFromInt(total),
		Status:             enums.OrderStatusPending,
		Notes:              input.Notes,
		Items:              items,
	}
}
