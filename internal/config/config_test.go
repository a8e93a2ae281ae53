package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Database.Provider != "postgresql" {
		t.Errorf("default provider = %q, want postgresql", cfg.Database.Provider)
	}
	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("default url_env = %q, want DATABASE_URL", cfg.Database.URLEnv)
	}
	if cfg.Database.Schema != "classicmodels" {
		t.Errorf("default schema = %q, want classicmodels", cfg.Database.Schema)
	}

	if cfg.Seed.ProductLines != 6 || cfg.Seed.Offices != 6 || cfg.Seed.Employees != 30 {
		t.Errorf("unexpected seed defaults: %+v", cfg.Seed)
	}
	if cfg.Seed.Products != 120 || cfg.Seed.Customers != 150 || cfg.Seed.Orders != 400 {
		t.Errorf("unexpected seed defaults: %+v", cfg.Seed)
	}

	if cfg.Report.CSVDir != "reports" {
		t.Errorf("default csv_dir = %q, want reports", cfg.Report.CSVDir)
	}
	if cfg.Report.StatementTimeoutSeconds != 60 {
		t.Errorf("default statement_timeout_seconds = %d, want 60", cfg.Report.StatementTimeoutSeconds)
	}
}

func TestLoadSchemaDefaultOnlyForPostgres(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("database.provider", "mysql")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Database.Schema != "" {
		t.Errorf("mysql schema = %q, want empty", cfg.Database.Schema)
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("database.provider", "sqlite")
	viper.Set("database.url_env", "CLASSICSEED_DB")
	viper.Set("seed.orders", 25)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Database.Provider != "sqlite" {
		t.Errorf("provider = %q, want sqlite", cfg.Database.Provider)
	}
	if cfg.Database.URLEnv != "CLASSICSEED_DB" {
		t.Errorf("url_env = %q, want CLASSICSEED_DB", cfg.Database.URLEnv)
	}
	if cfg.Seed.Orders != 25 {
		t.Errorf("seed.orders = %d, want 25", cfg.Seed.Orders)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Database: Database{Provider: "postgresql"},
		Seed:     Seed{ProductLines: 6, Offices: 6, Employees: 30, Products: 120, Customers: 150, Orders: 400},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := *valid
	bad.Database.Provider = "mongodb"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unsupported provider")
	}

	bad = *valid
	bad.Seed.ProductLines = 7
	if err := bad.Validate(); err == nil {
		t.Error("expected error for product_lines > 6")
	}

	bad = *valid
	bad.Seed.Customers = -1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative customer count")
	}

	bad = *valid
	bad.Report.StatementTimeoutSeconds = -5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{Database: Database{URLEnv: "CLASSICSEED_TEST_URL"}}

	t.Setenv("CLASSICSEED_TEST_URL", "postgres://localhost/classic")
	url, err := cfg.GetDatabaseURL()
	if err != nil {
		t.Fatalf("GetDatabaseURL() returned error: %v", err)
	}
	if url != "postgres://localhost/classic" {
		t.Errorf("url = %q", url)
	}

	t.Setenv("CLASSICSEED_TEST_URL", "")
	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("expected error for unset environment variable")
	}
}
