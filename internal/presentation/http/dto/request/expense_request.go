package request

import "github.com/shopspring/decimal"

// AddExpenseRequest represents a new expense
type AddExpenseRequest struct {
	Name   string           `json:"name" binding:"max=255"`
	Amount *decimal.Decimal `json:"amount"`
}
