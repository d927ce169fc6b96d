package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yumzee-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, accountID, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, accountID uuid.UUID, params *domainRepo.DateRangeParams) ([]entity.Order, error) {
	var orders []entity.Order

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(OwnedBy(accountID))
	if params != nil {
		query = query.Scopes(CreatedBetween(params.Since, params.Until))
	}

	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Delete(ctx context.Context, accountID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Delete(&entity.Order{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
