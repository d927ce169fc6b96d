package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy returns a GORM scope that filters by owning account.
// Every query on account-scoped tables goes through it. A nil account
// matches nothing, so a missing identity can never widen a query.
func OwnedBy(accountID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if accountID == uuid.Nil {
			return db.Where("1 = 0")
		}
		return db.Where("account_id = ?", accountID)
	}
}

// CreatedBetween applies optional created_at bounds
func CreatedBetween(since, until *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if since != nil {
			db = db.Where("created_at >= ?", *since)
		}
		if until != nil {
			db = db.Where("created_at < ?", *until)
		}
		return db
	}
}
