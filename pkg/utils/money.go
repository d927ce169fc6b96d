package utils

import "github.com/shopspring/decimal"

// FormatMoney renders an amount with exactly two decimals for display
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// HasAtMostTwoDecimals reports whether d can be stored in a decimal(12,2) column
// without rounding.
func HasAtMostTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// MaxMoney is the largest amount that fits decimal(12,2)
var MaxMoney = decimal.RequireFromString("9999999999.99")
