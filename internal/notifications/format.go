package notifications

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// formatCLP renders a peso amount with dot thousand separators, e.g. $39.000.
func formatCLP(amount decimal.Decimal) string {
	digits := strconv.FormatInt(amount.IntPart(), 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var out []byte
	for i, ch := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, ch)
	}

	prefix := "$"
	if negative {
		prefix = "-$"
	}
	return prefix + string(out)
}
