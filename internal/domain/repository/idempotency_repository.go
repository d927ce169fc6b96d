package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and account ID
	GetByKey(ctx context.Context, key string, accountID uuid.UUID) (*entity.IdempotencyKey, error)
	// Reserve stores a pending key. It reports false when a live row for the
	// same key and account already exists.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete records the response of a reserved key
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release drops a pending key so the request can be retried
	Release(ctx context.Context, key string, accountID uuid.UUID) error
	// DeleteExpired removes expired idempotency keys
	DeleteExpired(ctx context.Context) (int64, error)
}
