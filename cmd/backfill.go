package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"classicseed/internal/gen"
	"classicseed/internal/seeder"
)

var (
	backfillStartYear int
	backfillEndYear   int
	backfillRandSeed  uint64
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Generate multi-year historical order data",
	Long: `Synthesizes shipped orders and matching payments across a range of past
years, referencing only customers and products already in the store. Each
simulated year commits independently, so a failure partway through loses at
most the current year and the run can be repeated from there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, dialect, db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		s := seeder.New(db, dialect, gen.New(backfillRandSeed), seeder.Counts{})
		opts := seeder.BackfillOptions{
			StartYear: backfillStartYear,
			EndYear:   backfillEndYear,
		}
		if _, err := s.Backfill(ctx, opts); err != nil {
			return fmt.Errorf("backfill failed: %w", err)
		}
		return nil
	},
}

func init() {
	thisYear := time.Now().Year()
	backfillCmd.Flags().IntVar(&backfillStartYear, "start-year", thisYear-3, "First year of history to generate (inclusive)")
	backfillCmd.Flags().IntVar(&backfillEndYear, "end-year", thisYear-1, "Last year of history to generate (inclusive)")
	backfillCmd.Flags().Uint64Var(&backfillRandSeed, "seed", 0, "Random seed for reproducible generation (0 uses the clock)")

	rootCmd.AddCommand(backfillCmd)
}
