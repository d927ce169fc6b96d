package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yumzee-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) domainRepo.MenuRepository {
	return &menuRepository{db: db}
}

// FindOrCreateCategory inserts with ON CONFLICT DO NOTHING against the
// (account_id, name) unique index and then reads the row back, so two
// concurrent first-time adds converge on the same category.
func (r *menuRepository) FindOrCreateCategory(ctx context.Context, accountID uuid.UUID, name string) (*entity.MenuCategory, error) {
	category := &entity.MenuCategory{AccountID: accountID, Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(category).Error
	if err != nil {
		return nil, err
	}

	// BeforeCreate assigned an ID even if the insert was skipped, so the
	// stored row is the only reliable answer.
	var stored entity.MenuCategory
	err = r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Where("name = ?", name).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *menuRepository) ListCategories(ctx context.Context, accountID uuid.UUID) ([]entity.MenuCategory, error) {
	var categories []entity.MenuCategory
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *menuRepository) CreateItem(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *menuRepository) GetItem(ctx context.Context, accountID, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Preload("Category").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) ListItems(ctx context.Context, accountID uuid.UUID) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Preload("Category").
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *menuRepository) DeleteItem(ctx context.Context, accountID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Scopes(OwnedBy(accountID)).
		Delete(&entity.MenuItem{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
