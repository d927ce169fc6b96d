package request

import "github.com/shopspring/decimal"

// AddItemRequest represents a new menu item. The category is created on first use.
type AddItemRequest struct {
	Category string           `json:"category" binding:"max=255"`
	Name     string           `json:"name" binding:"max=255"`
	Price    *decimal.Decimal `json:"price"`
}
