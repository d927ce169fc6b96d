package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is a restaurant operator signed in through Google.
// Every menu item, order and expense belongs to exactly one account.
type Account struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	GoogleID  string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Photo     string    `gorm:"size:1024" json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
