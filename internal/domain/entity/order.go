package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a settled table order. It is written once at settlement and never
// updated; the owning account may delete it.
type Order struct {
	ID            uuid.UUID          `gorm:"type:char(36);primaryKey" json:"id"`
	AccountID     uuid.UUID          `gorm:"type:char(36);not null;index" json:"-"`
	TableNo       int                `gorm:"not null;default:0" json:"table_no"`
	Items         []OrderLine        `gorm:"type:json;serializer:json;not null" json:"items"`
	Total         decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod enum.PaymentMethod `gorm:"size:10;not null" json:"payment_method"`
	UPIAmount     decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"upi_amount"`
	CashAmount    decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"cash_amount"`
	Discount      decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	DeliveryFee   decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"delivery_fee"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
}

// OrderLine is the persisted snapshot of a draft line. The unit price is not
// stored; only the order total carries money.
type OrderLine struct {
	ItemID   uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Tendered returns upi + cash, the amount the operator declared as received
func (o *Order) Tendered() decimal.Decimal {
	return o.UPIAmount.Add(o.CashAmount)
}

// TotalQuantity returns the number of units across all lines
func (o *Order) TotalQuantity() int {
	n := 0
	for _, l := range o.Items {
		n += l.Quantity
	}
	return n
}
