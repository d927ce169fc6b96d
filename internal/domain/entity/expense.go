package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a named outgoing payment recorded by an account
type Expense struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	AccountID uuid.UUID       `gorm:"type:char(36);not null;index" json:"-"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
