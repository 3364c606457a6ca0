package orders

import "github.com/chexseeds/chexseeds-backend/pkg/config"

// Pricing applies the flat-rate shipping rule with a free threshold.
type Pricing struct {
	freeThreshold int64
	flatRate      int64
}

// NewPricing builds a Pricing from the shipping configuration.
func NewPricing(cfg config.ShippingConfig) Pricing {
	return Pricing{freeThreshold: cfg.FreeThreshold, flatRate: cfg.FlatRate}
}

// ShippingCost is zero strictly above the free threshold, the flat rate at
// the threshold and below. An empty cart still quotes the flat rate; callers
// reject empty carts before pricing.
func (p Pricing) ShippingCost(subtotal int64) int64 {
	if subtotal > p.freeThreshold {
		return 0
	}
	return p.flatRate
}

// Quote returns subtotal, shipping and total for the given items.
func (p Pricing) Quote(items []OrderItemInput) (subtotal, shipping, total int64) {
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	shipping = p.ShippingCost(subtotal)
	return subtotal, shipping, subtotal + shipping
}
