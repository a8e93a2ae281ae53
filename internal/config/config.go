package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Database Database `json:"database" mapstructure:"database"`
	Seed     Seed     `json:"seed" mapstructure:"seed"`
	Report   Report   `json:"report" mapstructure:"report"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	// Schema is the qualifier prepended to table names. The classicmodels
	// schema lives in a named PostgreSQL schema; MySQL and SQLite address
	// tables unqualified.
	Schema string `json:"schema,omitempty" mapstructure:"schema"`
}

// Seed holds the default target cardinalities for a full generation run.
// Orders additionally produce 1..5 line items each and customers 0..3
// payments each; those counts are drawn per entity, not configured.
type Seed struct {
	ProductLines int `json:"product_lines" mapstructure:"product_lines"`
	Offices      int `json:"offices" mapstructure:"offices"`
	Employees    int `json:"employees" mapstructure:"employees"`
	Products     int `json:"products" mapstructure:"products"`
	Customers    int `json:"customers" mapstructure:"customers"`
	Orders       int `json:"orders" mapstructure:"orders"`
}

type Report struct {
	CSVDir string `json:"csv_dir" mapstructure:"csv_dir"`
	// StatementTimeoutSeconds bounds each reporting query; 0 disables the
	// limit. Applied per session, never to the generator's transactions.
	StatementTimeoutSeconds int `json:"statement_timeout_seconds" mapstructure:"statement_timeout_seconds"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Defaults
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Database.Schema == "" && isPostgres(cfg.Database.Provider) {
		cfg.Database.Schema = "classicmodels"
	}
	if cfg.Seed.ProductLines == 0 {
		cfg.Seed.ProductLines = 6
	}
	if cfg.Seed.Offices == 0 {
		cfg.Seed.Offices = 6
	}
	if cfg.Seed.Employees == 0 {
		cfg.Seed.Employees = 30
	}
	if cfg.Seed.Products == 0 {
		cfg.Seed.Products = 120
	}
	if cfg.Seed.Customers == 0 {
		cfg.Seed.Customers = 150
	}
	if cfg.Seed.Orders == 0 {
		cfg.Seed.Orders = 400
	}
	if cfg.Report.CSVDir == "" {
		cfg.Report.CSVDir = "reports"
	}
	if cfg.Report.StatementTimeoutSeconds == 0 {
		cfg.Report.StatementTimeoutSeconds = 60
	}

	return &cfg, nil
}

func isPostgres(provider string) bool {
	return provider == "postgresql" || provider == "postgres"
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Seed.ProductLines < 1 || c.Seed.ProductLines > 6 {
		return fmt.Errorf("seed.product_lines must be between 1 and 6, got %d", c.Seed.ProductLines)
	}

	for name, n := range map[string]int{
		"seed.offices":   c.Seed.Offices,
		"seed.employees": c.Seed.Employees,
		"seed.products":  c.Seed.Products,
		"seed.customers": c.Seed.Customers,
		"seed.orders":    c.Seed.Orders,
	} {
		if n < 0 {
			return fmt.Errorf("%s cannot be negative, got %d", name, n)
		}
	}

	if c.Report.StatementTimeoutSeconds < 0 {
		return fmt.Errorf("report.statement_timeout_seconds cannot be negative")
	}

	return nil
}

// GetDatabaseURL reads the connection URL from the configured environment
// variable. Credentials never live in the config file or the generator.
func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}
