package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"classicseed/internal/gen"
	"classicseed/internal/seeder"
)

var appendRandSeed uint64

var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append one current-dated order to an existing store",
	Long: `Inserts exactly one new order with line items and a payment, dated
today and referencing existing customers and products. Requires a store that
has already been seeded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, dialect, db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		color.Cyan("📦 Appending one order...")
		s := seeder.New(db, dialect, gen.New(appendRandSeed), seeder.Counts{})
		if _, err := s.AppendOrder(ctx); err != nil {
			return fmt.Errorf("append failed: %w", err)
		}
		return nil
	},
}

func init() {
	appendCmd.Flags().Uint64Var(&appendRandSeed, "seed", 0, "Random seed for reproducible generation (0 uses the clock)")

	rootCmd.AddCommand(appendCmd)
}
