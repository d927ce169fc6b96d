package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yumzee-api/internal/domain/repository"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, accountID uuid.UUID, params *domainRepo.DateRangeParams) ([]entity.Expense, error) {
	var expenses []entity.Expense

	query := r.db.WithContext(ctx).Model(&entity.Expense{}).Scopes(OwnedBy(accountID))
	if params != nil {
		query = query.Scopes(CreatedBetween(params.Since, params.Until))
	}

	err := query.Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) Delete(ctx context.Context, accountID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Delete(&entity.Expense{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
