package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
)

// MenuRepository defines the interface for menu category and item operations.
// Every method is scoped to the given account.
type MenuRepository interface {
	// FindOrCreateCategory returns the account's category with this name,
	// inserting it first if it does not exist. Safe under concurrent calls.
	FindOrCreateCategory(ctx context.Context, accountID uuid.UUID, name string) (*entity.MenuCategory, error)
	ListCategories(ctx context.Context, accountID uuid.UUID) ([]entity.MenuCategory, error)

	CreateItem(ctx context.Context, item *entity.MenuItem) error
	GetItem(ctx context.Context, accountID, id uuid.UUID) (*entity.MenuItem, error)
	ListItems(ctx context.Context, accountID uuid.UUID) ([]entity.MenuItem, error)
	// DeleteItem reports whether a row owned by the account was removed
	DeleteItem(ctx context.Context, accountID, id uuid.UUID) (bool, error)
}
