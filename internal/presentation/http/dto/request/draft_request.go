package request

import "github.com/shopspring/decimal"

// AddDraftLineRequest adds one unit of a menu item to a table
type AddDraftLineRequest struct {
	ItemID string `json:"item_id" binding:"required,uuid"`
}

// AdjustDraftLineRequest changes a line's quantity by Delta
type AdjustDraftLineRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// DraftAdjustmentsRequest sets the discount and delivery fee. Null or missing
// values unset them.
type DraftAdjustmentsRequest struct {
	Discount    *decimal.Decimal `json:"discount"`
	DeliveryFee *decimal.Decimal `json:"delivery_fee"`
}
