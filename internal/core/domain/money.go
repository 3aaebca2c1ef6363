package domain

import "github.com/shopspring/decimal"

// FormatCents renders an amount in minor units for display, e.g. 1000 -> "$10.00".
// Stored and transmitted amounts stay integral.
func FormatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
