package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"classicseed/internal/gen"
	"classicseed/internal/seeder"
)

var (
	seedRandSeed     uint64
	seedDryRun       bool
	seedProductLines int
	seedOffices      int
	seedEmployees    int
	seedProducts     int
	seedCustomers    int
	seedOrders       int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate and insert a full synthetic dataset",
	Long: `Generates a referentially consistent dataset for every classicmodels
table and inserts it inside a single transaction. Rows whose keys already
exist are skipped, so reruns against a populated store are safe.

Pass --seed to make a run reproducible; a zero seed draws from the clock.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, dialect, db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		counts := seeder.Counts{
			ProductLines: cfg.Seed.ProductLines,
			Offices:      cfg.Seed.Offices,
			Employees:    cfg.Seed.Employees,
			Products:     cfg.Seed.Products,
			Customers:    cfg.Seed.Customers,
			Orders:       cfg.Seed.Orders,
		}
		applyCountFlags(cmd, &counts)
		if err := counts.Validate(); err != nil {
			return err
		}

		if seedDryRun {
			color.Cyan("🔍 Dry run: would seed %d product lines, %d offices, %d employees, %d products, %d customers, %d orders against %s",
				counts.ProductLines, counts.Offices, counts.Employees, counts.Products, counts.Customers, counts.Orders, dialect.Name())
			return nil
		}

		s := seeder.New(db, dialect, gen.New(seedRandSeed), counts)
		if _, err := s.Run(ctx); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		return nil
	},
}

// applyCountFlags overrides configured cardinalities with any flags the
// operator set explicitly. Unset flags keep the config values.
func applyCountFlags(cmd *cobra.Command, counts *seeder.Counts) {
	if cmd.Flags().Changed("product-lines") {
		counts.ProductLines = seedProductLines
	}
	if cmd.Flags().Changed("offices") {
		counts.Offices = seedOffices
	}
	if cmd.Flags().Changed("employees") {
		counts.Employees = seedEmployees
	}
	if cmd.Flags().Changed("products") {
		counts.Products = seedProducts
	}
	if cmd.Flags().Changed("customers") {
		counts.Customers = seedCustomers
	}
	if cmd.Flags().Changed("orders") {
		counts.Orders = seedOrders
	}
}

func init() {
	seedCmd.Flags().Uint64Var(&seedRandSeed, "seed", 0, "Random seed for reproducible generation (0 uses the clock)")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Validate config and connection without inserting anything")
	seedCmd.Flags().IntVar(&seedProductLines, "product-lines", 6, "Number of product lines (max 6)")
	seedCmd.Flags().IntVar(&seedOffices, "offices", 6, "Number of offices")
	seedCmd.Flags().IntVar(&seedEmployees, "employees", 30, "Number of employees")
	seedCmd.Flags().IntVar(&seedProducts, "products", 120, "Number of products")
	seedCmd.Flags().IntVar(&seedCustomers, "customers", 150, "Number of customers")
	seedCmd.Flags().IntVar(&seedOrders, "orders", 400, "Number of orders")

	rootCmd.AddCommand(seedCmd)
}
