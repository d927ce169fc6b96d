package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.Expense, error)
	// List returns expenses newest first
	List(ctx context.Context, accountID uuid.UUID, params *DateRangeParams) ([]entity.Expense, error)
	Delete(ctx context.Context, accountID, id uuid.UUID) (bool, error)
}
