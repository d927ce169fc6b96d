package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// ErrDraftLineNotFound is returned when a quantity change targets an item
// that is not on the draft.
var ErrDraftLineNotFound = errors.New("draft line not found")

// OrderDraft is the in-progress order for one table. It lives in the draft
// store, not in the relational database, until it is settled.
type OrderDraft struct {
	TableNo int         `json:"table_no"`
	Lines   []DraftLine `json:"lines"`
	// Discount and DeliveryFee are nil when the operator left them empty.
	Discount    *decimal.Decimal `json:"discount"`
	DeliveryFee *decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal  `json:"total"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// DraftLine is one item on a draft with the price captured when it was added
type DraftLine struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// NewOrderDraft returns an empty draft for a table
func NewOrderDraft(tableNo int) *OrderDraft {
	return &OrderDraft{TableNo: tableNo, Lines: []DraftLine{}, Total: decimal.Zero}
}

// IsEmpty reports whether the draft has no lines
func (d *OrderDraft) IsEmpty() bool {
	return len(d.Lines) == 0
}

// AddLine increments the line for itemID, or appends a new line with
// quantity 1 priced at the given snapshot.
func (d *OrderDraft) AddLine(itemID uuid.UUID, name string, unitPrice decimal.Decimal) {
	for i := range d.Lines {
		if d.Lines[i].ItemID == itemID {
			d.Lines[i].Quantity++
			d.Recalculate()
			return
		}
	}
	d.Lines = append(d.Lines, DraftLine{ItemID: itemID, Name: name, UnitPrice: unitPrice, Quantity: 1})
	d.Recalculate()
}

// AdjustQuantity adds delta to a line's quantity and drops the line once it
// reaches zero. Emptying the draft also clears discount and delivery fee.
func (d *OrderDraft) AdjustQuantity(itemID uuid.UUID, delta int) error {
	idx := -1
	for i := range d.Lines {
		if d.Lines[i].ItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrDraftLineNotFound
	}

	d.Lines[idx].Quantity += delta
	if d.Lines[idx].Quantity <= 0 {
		d.Lines = append(d.Lines[:idx], d.Lines[idx+1:]...)
	}
	if d.IsEmpty() {
		d.Discount = nil
		d.DeliveryFee = nil
	}
	d.Recalculate()
	return nil
}

// SetDiscount sets or unsets the discount
func (d *OrderDraft) SetDiscount(v *decimal.Decimal) {
	d.Discount = v
	d.Recalculate()
}

// SetDeliveryFee sets or unsets the delivery fee
func (d *OrderDraft) SetDeliveryFee(v *decimal.Decimal) {
	d.DeliveryFee = v
	d.Recalculate()
}

// PricingLines converts the draft lines for the calculator
func (d *OrderDraft) PricingLines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(d.Lines))
	for _, l := range d.Lines {
		if l.Quantity <= 0 {
			continue
		}
		lines = append(lines, pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return lines
}

// Subtotal returns the sum of all line amounts
func (d *OrderDraft) Subtotal() decimal.Decimal {
	return pricing.Subtotal(d.PricingLines())
}

// Recalculate refreshes Total from the lines, discount and delivery fee
func (d *OrderDraft) Recalculate() {
	d.Total = pricing.ComputeTotal(d.PricingLines(), pricing.OrZero(d.Discount), pricing.OrZero(d.DeliveryFee))
}

// Snapshot returns the lines as they are persisted on a settled order
func (d *OrderDraft) Snapshot() []OrderLine {
	out := make([]OrderLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		if l.Quantity <= 0 {
			continue
		}
		out = append(out, OrderLine{ItemID: l.ItemID, Name: l.Name, Quantity: l.Quantity})
	}
	return out
}
