package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt. Settled orders do
// not keep unit prices, so UnitPrice and Total are nil for them.
type ReceiptItem struct {
	Name      string           `json:"name"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Total     *decimal.Decimal `json:"total,omitempty"`
}

// Receipt is a value object representing a printable receipt.
// It is composed from a draft or an order at print time and never stored.
type Receipt struct {
	Header      ReceiptHeader    `json:"header"`
	Reference   string           `json:"reference"`
	TableNo     int              `json:"table_no"`
	Date        string           `json:"date"`
	PaymentType string           `json:"payment_type,omitempty"`
	Items       []ReceiptItem    `json:"items"`
	SubTotal    *decimal.Decimal `json:"sub_total,omitempty"`
	Discount    decimal.Decimal  `json:"discount"`
	DeliveryFee decimal.Decimal  `json:"delivery_fee"`
	Total       decimal.Decimal  `json:"total"`
	UPI         decimal.Decimal  `json:"upi"`
	Cash        decimal.Decimal  `json:"cash"`
}
