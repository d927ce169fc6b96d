package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	GetByGoogleID(ctx context.Context, googleID string) (*entity.Account, error)
}
