package orders

// OrderItemInput is one cart line handed to order creation. Prices are CLP
// amounts without decimals.
type OrderItemInput struct {
	ProductID       string
	ProductName     string
	ProductSubtitle *string
	ProductImage    *string
	Quantity        int
	UnitPrice       int64
	THC             *string
	Genotype        *string
	Color           *string
}

// CreateOrderInput carries the checkout payload for persistence.
type CreateOrderInput struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	Notes              *string
	UserID             *string
	Items              []OrderItemInput
}
