package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chexseeds/chexseeds-backend/pkg/config"
)

func TestShippingCostThresholdBoundary(t *testing.T) {
	p := NewPricing(config.ShippingConfig{FreeThreshold: 100000, FlatRate: 8000})

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"below threshold", 99999, 8000},
		{"exactly at threshold", 100000, 8000},
		{"just above threshold", 100001, 0},
		{"well above threshold", 250000, 0},
		{"empty cart", 0, 8000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ShippingCost(tt.subtotal))
		})
	}
}

func TestQuoteTwoPacksAndASingle(t *testing.T) {
	p := NewPricing(config.ShippingConfig{FreeThreshold: 100000, FlatRate: 8000})

	subtotal, shipping, total := p.Quote([]OrderItemInput{
		{ProductID: "gorilla-glue", ProductName: "Gorilla Glue", Quantity: 2, UnitPrice: 21000},
		{ProductID: "wedding-cake", ProductName: "Wedding Cake", Quantity: 1, UnitPrice: 41000},
	})

	assert.EqualValues(t, 83000, subtotal)
	assert.EqualValues(t, 8000, shipping)
	assert.EqualValues(t, 91000, total)
}
