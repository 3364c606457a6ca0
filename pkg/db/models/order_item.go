package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem snapshots one cart line at submission time. Post-order catalog
// changes never touch these rows.
type OrderItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID         uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID       string          `gorm:"column:product_id;not null" json:"productId"`
	ProductName     string          `gorm:"column:product_name;not null" json:"productName"`
	ProductSubtitle *string         `gorm:"column:product_subtitle" json:"productSubtitle,omitempty"`
	ProductImage    *string         `gorm:"column:product_image" json:"productImage,omitempty"`
	Quantity        int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unitPrice"`
	TotalPrice      decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null" json:"totalPrice"`
	THC             *string         `gorm:"column:thc" json:"thc,omitempty"`
	Genotype        *string         `gorm:"column:genotype" json:"genotype,omitempty"`
	Color           *string         `gorm:"column:color" json:"color,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
