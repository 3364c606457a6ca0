package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chexseeds/chexseeds-backend/pkg/enums"
)

// Order is the persisted header for a checkout submission. Monetary fields are
// stored as numeric columns and serialized as decimal strings.
type Order struct {
	ID                 uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderNumber        string            `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key" json:"orderNumber"`
	UserID             *string           `gorm:"column:user_id" json:"userId,omitempty"`
	CustomerName       string            `gorm:"column:customer_name;not null" json:"customerName"`
	CustomerEmail      string            `gorm:"column:customer_email;not null" json:"customerEmail"`
	CustomerPhone      string            `gorm:"column:customer_phone;not null" json:"customerPhone"`
	ShippingAddress    string            `gorm:"column:shipping_address;not null" json:"shippingAddress"`
	ShippingCity       string            `gorm:"column:shipping_city;not null" json:"shippingCity"`
	ShippingPostalCode string            `gorm:"column:shipping_postal_code;not null" json:"shippingPostalCode"`
	Subtotal           decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	ShippingCost       decimal.Decimal   `gorm:"column:shipping_cost;type:numeric(12,2);not null" json:"shippingCost"`
	Total              decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Status             enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Notes              *string           `gorm:"column:notes" json:"notes,omitempty"`
	Items              []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
