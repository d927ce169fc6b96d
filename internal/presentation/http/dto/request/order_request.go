package request

import "github.com/shopspring/decimal"

// PaymentRequest is the tender declared when settling
type PaymentRequest struct {
	Method string           `json:"method" binding:"required"`
	UPI    *decimal.Decimal `json:"upi"`
	Cash   *decimal.Decimal `json:"cash"`
}

// SettleTableRequest settles the stored draft of a table
type SettleTableRequest struct {
	Payment PaymentRequest `json:"payment"`
}

// OrderItemRequest is one posted order line. Price and name are optional and
// default to the menu item's.
type OrderItemRequest struct {
	ID       string           `json:"id" binding:"required,uuid"`
	Name     string           `json:"name" binding:"max=255"`
	Price    *decimal.Decimal `json:"price"`
	Quantity int              `json:"quantity" binding:"min=0"`
}

// CreateOrderRequest settles lines posted by the client
type CreateOrderRequest struct {
	TableNo int                `json:"table_no" binding:"min=0"`
	Items   []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Total   *decimal.Decimal   `json:"total"`
	Payment PaymentRequest     `json:"payment"`
	// DeliveryFee also accepts the camelCase key older clients send
	Discount       *decimal.Decimal `json:"discount"`
	DeliveryFee    *decimal.Decimal `json:"delivery_fee"`
	DeliveryFeeAlt *decimal.Decimal `json:"deliveryFee"`
}

// DateRangeQuery narrows list endpoints. Dates are YYYY-MM-DD in the
// reporting timezone; until is inclusive.
type DateRangeQuery struct {
	Since string `form:"since" binding:"omitempty,datetime=2006-01-02"`
	Until string `form:"until" binding:"omitempty,datetime=2006-01-02"`
}
