package config

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      DatabaseConfig
		contains []string
	}{
		{
			name: "mysql",
			cfg:  DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", Name: "yumzee", User: "root", Password: "pw"},
			contains: []string{
				"root:pw@tcp(db:3306)/yumzee",
				"parseTime=True",
			},
		},
		{
			name:     "postgres",
			cfg:      DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", Name: "yumzee", User: "pg", Password: "pw", SSLMode: "disable", Timezone: "UTC"},
			contains: []string{"host=db", "dbname=yumzee", "sslmode=disable"},
		},
		{
			name:     "sqlite",
			cfg:      DatabaseConfig{Driver: "sqlite", Path: "local.db"},
			contains: []string{"local.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.cfg.DSN()
			for _, want := range tt.contains {
				if !strings.Contains(dsn, want) {
					t.Errorf("DSN() = %q, missing %q", dsn, want)
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POS_TABLE_COUNT", "12")
	t.Setenv("REPORT_TIMEZONE", "Asia/Kolkata")

	cfg := Load()

	if cfg.POS.TableCount != 12 {
		t.Errorf("TableCount = %d, want 12", cfg.POS.TableCount)
	}
	if cfg.POS.Location == nil || cfg.POS.Location.String() != "Asia/Kolkata" {
		t.Errorf("Location = %v, want Asia/Kolkata", cfg.POS.Location)
	}
	if cfg.Database.Driver == "" {
		t.Error("Database.Driver should have a default")
	}
}
