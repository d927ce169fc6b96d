package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"github.com/sangkips/yumzee-api/internal/infrastructure/cache"
	"github.com/sangkips/yumzee-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/yumzee-api/internal/infrastructure/repository"
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testTables = 10

type fixture struct {
	db       *gorm.DB
	menu     *MenuService
	drafts   *DraftService
	orders   *OrderService
	expenses *ExpenseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "service.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	log := zap.NewNop()
	menuRepo := infraRepo.NewMenuRepository(db)
	drafts := NewDraftService(cache.NewMemoryDraftRepository(), menuRepo, testTables)

	return &fixture{
		db:       db,
		menu:     NewMenuService(menuRepo, log),
		drafts:   drafts,
		orders:   NewOrderService(infraRepo.NewOrderRepository(db), drafts, log),
		expenses: NewExpenseService(infraRepo.NewExpenseRepository(db), log),
	}
}

func (f *fixture) addItem(t *testing.T, account uuid.UUID, category, name, price string) *entity.MenuItem {
	t.Helper()
	item, err := f.menu.AddItem(context.Background(), &AddItemInput{
		AccountID:    account,
		CategoryName: category,
		Name:         name,
		Price:        money(price),
	})
	if err != nil {
		t.Fatalf("AddItem(%s) error = %v", name, err)
	}
	return item
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func wantValidation(t *testing.T, err error) {
	t.Helper()
	if !apperror.IsValidation(err) {
		t.Fatalf("error = %v, want a validation error", err)
	}
}

func wantNotFound(t *testing.T, err error) {
	t.Helper()
	if !apperror.IsNotFound(err) {
		t.Fatalf("error = %v, want a not found error", err)
	}
}
