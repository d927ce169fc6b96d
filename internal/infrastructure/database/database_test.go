package database

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/yumzee-api/internal/config"
	"github.com/sangkips/yumzee-api/internal/domain/entity"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "pos.db"),
	}

	db, err := Open(cfg, false, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	for _, table := range []string{"accounts", "menu_categories", "menu_items", "orders", "expenses", "idempotency_keys"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s was not created", table)
		}
	}
	if !db.Migrator().HasIndex("menu_categories", "idx_menu_categories_account_name") {
		t.Error("unique category index was not created")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, false, zap.NewNop())
	if err == nil {
		t.Fatal("Open() should fail for an unknown driver")
	}
}

func TestGormLogsGoThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "pos.db"),
	}

	db, err := Open(cfg, false, zap.New(core))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	gormEntries := func() []observer.LoggedEntry {
		var out []observer.LoggedEntry
		for _, e := range logs.All() {
			if e.LoggerName == "gorm" {
				out = append(out, e)
			}
		}
		return out
	}

	var account entity.Account
	if err := db.First(&account, "google_id = ?", "nobody").Error; err == nil {
		t.Fatal("First() should not find an account")
	}
	if got := gormEntries(); len(got) != 0 {
		t.Errorf("record not found was logged: %+v", got)
	}

	if err := db.Exec("SELECT * FROM no_such_table WHERE id = ?", uuid.New()).Error; err == nil {
		t.Fatal("Exec() on a missing table should fail")
	}
	got := gormEntries()
	if len(got) != 1 {
		t.Fatalf("got %d gorm log entries, want 1", len(got))
	}
	if got[0].Level != zapcore.WarnLevel {
		t.Errorf("gorm error logged at %s, want warn", got[0].Level)
	}
}
