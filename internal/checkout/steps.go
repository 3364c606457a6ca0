package checkout

import (
	"regexp"
	"strings"

	"github.com/chexseeds/chexseeds-backend/internal/cart"
	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
)

var deliverableEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateCustomerInfo checks the step-1 form. Every missing or malformed
// field is reported so the caller can surface them all at once.
func ValidateCustomerInfo(info cart.CustomerInfo) error {
	details := map[string]any{}

	required := map[string]string{
		"fullName":   info.FullName,
		"email":      info.Email,
		"phone":      info.Phone,
		"address":    info.Address,
		"city":       info.City,
		"postalCode": info.PostalCode,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			details[field] = "required"
		}
	}
	if _, ok := details["email"]; !ok && !deliverableEmail.MatchString(info.Email) {
		details["email"] = "invalid format"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer info incomplete").WithDetails(details)
	}
	return nil
}

// Advance moves the cart's checkout wizard forward. Step 2 is only reachable
// with a non-empty cart and a complete step-1 form.
func Advance(store *cart.Store, targetStep int) error {
	state := store.State()
	if targetStep == 2 {
		if len(state.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		if err := ValidateCustomerInfo(state.Checkout.CustomerInfo); err != nil {
			return err
		}
	}
	if err := store.SetCheckoutStep(targetStep); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout step must be 1 or 2")
	}
	return nil
}
