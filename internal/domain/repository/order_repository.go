package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.Order, error)
	// List returns orders newest first
	List(ctx context.Context, accountID uuid.UUID, params *DateRangeParams) ([]entity.Order, error)
	Delete(ctx context.Context, accountID, id uuid.UUID) (bool, error)
}

// DateRangeParams narrows list queries by creation time. Nil bounds are open.
type DateRangeParams struct {
	Since *time.Time
	Until *time.Time
}
