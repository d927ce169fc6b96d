// Package pricing computes order totals.
package pricing

import "github.com/shopspring/decimal"

// Line is a priced quantity of a single menu item.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal returns Σ(unitPrice × quantity) over lines.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// ComputeTotal returns subtotal − discount + deliveryFee.
//
// Arithmetic is exact and unrounded. Negative inputs are not rejected here;
// they flow through the formula unchanged and callers decide whether to accept
// the result. Lines with a zero quantity must be dropped by the caller.
func ComputeTotal(lines []Line, discount, deliveryFee decimal.Decimal) decimal.Decimal {
	return Subtotal(lines).Sub(discount).Add(deliveryFee)
}

// OrZero dereferences an optional amount, treating nil as zero.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
