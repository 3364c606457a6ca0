package models

import (
	"time"
)

// Product is a seed listing in the storefront catalog.
type Product struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex:products_slug_key" json:"slug"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Subtitle  string    `gorm:"column:subtitle;not null" json:"subtitle"`
	Price     int64     `gorm:"column:price;not null" json:"price"`
	THC       string    `gorm:"column:thc;not null" json:"thc"`
	Flowering string    `gorm:"column:flowering;not null" json:"flowering"`
	Genotype  string    `gorm:"column:genotype;not null" json:"genotype"`
	Color     string    `gorm:"column:color;not null" json:"color"`
	Image     *string   `gorm:"column:image" json:"image,omitempty"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
