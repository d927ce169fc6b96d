package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/domain/repository"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MenuService manages an account's menu categories and items
type MenuService struct {
	menuRepo repository.MenuRepository
	log      *zap.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuRepository, log *zap.Logger) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		log:      log,
	}
}

// AddItemInput represents the add menu item input
type AddItemInput struct {
	AccountID    uuid.UUID
	CategoryName string
	Name         string
	Price        *decimal.Decimal
}

// AddItem creates a menu item, creating its category on first use
func (s *MenuService) AddItem(ctx context.Context, input *AddItemInput) (*entity.MenuItem, error) {
	categoryName := strings.TrimSpace(input.CategoryName)
	name := strings.TrimSpace(input.Name)

	var errs fieldErrors
	if categoryName == "" {
		errs.add("category", "category is required")
	}
	if name == "" {
		errs.add("name", "name is required")
	}
	if input.Price == nil {
		errs.add("price", "price is required")
	} else {
		errs.checkMoney("price", *input.Price)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	category, err := s.menuRepo.FindOrCreateCategory(ctx, input.AccountID, categoryName)
	if err != nil {
		return nil, apperror.NewStorageError("resolve category", err)
	}

	item := &entity.MenuItem{
		AccountID:  input.AccountID,
		CategoryID: category.ID,
		Name:       name,
		Price:      *input.Price,
	}
	if err := s.menuRepo.CreateItem(ctx, item); err != nil {
		return nil, apperror.NewStorageError("create menu item", err)
	}
	item.SetCategory(category)

	s.log.Info("menu item added",
		zap.String("account_id", input.AccountID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("category", category.Name),
	)
	return item, nil
}

// ListItems returns the account's items with their category names
func (s *MenuService) ListItems(ctx context.Context, accountID uuid.UUID) ([]entity.MenuItem, error) {
	items, err := s.menuRepo.ListItems(ctx, accountID)
	if err != nil {
		return nil, apperror.NewStorageError("list menu items", err)
	}
	return items, nil
}

// ListCategories returns the account's categories
func (s *MenuService) ListCategories(ctx context.Context, accountID uuid.UUID) ([]entity.MenuCategory, error) {
	categories, err := s.menuRepo.ListCategories(ctx, accountID)
	if err != nil {
		return nil, apperror.NewStorageError("list categories", err)
	}
	return categories, nil
}

// GetItem retrieves one of the account's items
func (s *MenuService) GetItem(ctx context.Context, accountID, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetItem(ctx, accountID, id)
	if err != nil {
		return nil, apperror.NewStorageError("get menu item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// DeleteItem removes one of the account's items
func (s *MenuService) DeleteItem(ctx context.Context, accountID, id uuid.UUID) error {
	deleted, err := s.menuRepo.DeleteItem(ctx, accountID, id)
	if err != nil {
		return apperror.NewStorageError("delete menu item", err)
	}
	if !deleted {
		return apperror.NewNotFoundError("Menu item")
	}
	return nil
}
