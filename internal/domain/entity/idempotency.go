package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores the response of a processed request so a retried
// submission with the same key replays it instead of settling twice.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Key          string    `gorm:"column:idempotency_key;size:255;not null;uniqueIndex:idx_idempotency_account_key"`
	AccountID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_idempotency_account_key"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/orders"
	ResponseCode int       `gorm:"not null"` // 0 while pending
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// BeforeCreate generates a UUID before storing a key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsPending reports whether the request holding the key is still running
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
