package cart

// Item is one cart line. Product metadata is snapshotted from the catalog at
// add time.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Subtitle  string  `json:"subtitle"`
	Price     int64   `json:"price"`
	Image     *string `json:"image,omitempty"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	THC       string  `json:"thc"`
	Flowering string  `json:"flowering"`
	Genotype  string  `json:"genotype"`
}

// CustomerInfo holds the free-text fields collected during checkout step 1.
type CustomerInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Notes      string `json:"notes,omitempty"`
}

// CustomerInfoPatch shallow-merges individual fields into CustomerInfo.
type CustomerInfoPatch struct {
	FullName   *string `json:"fullName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// CheckoutState tracks the two-step wizard. It is never persisted so a
// reload cannot resume a half-filled form with stale submission flags.
type CheckoutState struct {
	Step         int          `json:"step"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	Submitting   bool         `json:"isSubmitting"`
	OrderPlaced  bool         `json:"orderPlaced"`
}

// State is the full cart view handed to subscribers and API responses.
type State struct {
	Items      []Item        `json:"items"`
	TotalItems int           `json:"totalItems"`
	TotalPrice int64         `json:"totalPrice"`
	Checkout   CheckoutState `json:"checkout"`
}

// Snapshot is the persisted subset of the cart: items and totals only.
type Snapshot struct {
	Items      []Item `json:"items"`
	TotalItems int    `json:"totalItems"`
	TotalPrice int64  `json:"totalPrice"`
}

func defaultCheckoutState() CheckoutState {
	return CheckoutState{Step: 1}
}
