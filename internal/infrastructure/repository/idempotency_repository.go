package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yumzee-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, accountID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Where("idempotency_key = ?", key).
		First(&ikey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ikey, nil
}

// Reserve clears an expired row for the same key, then inserts the pending
// row. The unique (idempotency_key, account_id) index decides the winner when
// two requests race.
func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ikey.AccountID)).
		Where("idempotency_key = ? AND expires_at < ?", ikey.Key, time.Now().UTC()).
		Delete(&entity.IdempotencyKey{}).Error
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "idempotency_key"}, {Name: "account_id"}},
		DoNothing: true,
	}).Create(ikey)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *idempotencyRepository) Complete(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).
		Model(&entity.IdempotencyKey{}).
		Scopes(OwnedBy(ikey.AccountID)).
		Where("idempotency_key = ?", ikey.Key).
		Updates(map[string]interface{}{
			"endpoint":      ikey.Endpoint,
			"response_code": ikey.ResponseCode,
			"response_body": ikey.ResponseBody,
			"expires_at":    ikey.ExpiresAt,
		}).Error
}

func (r *idempotencyRepository) Release(ctx context.Context, key string, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Where("idempotency_key = ? AND response_code = 0", key).
		Delete(&entity.IdempotencyKey{}).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&entity.IdempotencyKey{})
	return result.RowsAffected, result.Error
}
