package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService records and lists an account's expenses
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	log         *zap.Logger
	now         func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, log *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		log:         log,
		now:         time.Now,
	}
}

// AddExpenseInput represents the add expense input
type AddExpenseInput struct {
	AccountID uuid.UUID
	Name      string
	Amount    *decimal.Decimal
}

// AddExpense records a new expense
func (s *ExpenseService) AddExpense(ctx context.Context, input *AddExpenseInput) (*entity.Expense, error) {
	name := strings.TrimSpace(input.Name)

	var errs fieldErrors
	if name == "" {
		errs.add("name", "name is required")
	}
	if input.Amount == nil {
		errs.add("amount", "amount is required")
	} else {
		errs.checkMoney("amount", *input.Amount)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	expense := &entity.Expense{
		AccountID: input.AccountID,
		Name:      name,
		Amount:    *input.Amount,
		CreatedAt: s.now().UTC(),
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, apperror.NewStorageError("save expense", err)
	}

	s.log.Info("expense recorded",
		zap.String("account_id", input.AccountID.String()),
		zap.String("expense_id", expense.ID.String()),
		zap.String("amount", expense.Amount.StringFixed(2)),
	)
	return expense, nil
}

// ListExpenses returns the account's expenses newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, accountID uuid.UUID, params *repository.DateRangeParams) ([]entity.Expense, error) {
	expenses, err := s.expenseRepo.List(ctx, accountID, params)
	if err != nil {
		return nil, apperror.NewStorageError("list expenses", err)
	}
	return expenses, nil
}

// DeleteExpense removes one of the account's expenses
func (s *ExpenseService) DeleteExpense(ctx context.Context, accountID, id uuid.UUID) error {
	deleted, err := s.expenseRepo.Delete(ctx, accountID, id)
	if err != nil {
		return apperror.NewStorageError("delete expense", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Expense")
	}
	return nil
}
