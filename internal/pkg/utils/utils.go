package utils

import (
	"fmt"
)

// FormatPrice renders a currency amount for human-readable output.
// Example: ("EUR", 812.5) -> "EUR 812.50"
func FormatPrice(currency string, amount float64) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}

	return fmt.Sprintf("%s %.2f", currency, amount)
}
