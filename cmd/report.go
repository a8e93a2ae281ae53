package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"classicseed/internal/report"
)

var (
	reportSaveCSV bool
	reportCSVDir  string
	reportTimeout int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the analytical query catalog",
	Long: `Executes the fixed catalog of analytical queries against the store,
printing each result set as an aligned table. Individual query failures are
reported and skipped; the remaining queries still run.

With --save-csv each result set is also written to one CSV file per query.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, dialect, db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		catalog, err := report.LoadCatalog()
		if err != nil {
			return fmt.Errorf("failed to load query catalog: %w", err)
		}
		catalog.Qualify(cfg.Database.Schema)

		opts := report.Options{
			SaveCSV: reportSaveCSV,
			CSVDir:  cfg.Report.CSVDir,
			Timeout: time.Duration(cfg.Report.StatementTimeoutSeconds) * time.Second,
		}
		if cmd.Flags().Changed("csv-dir") {
			opts.CSVDir = reportCSVDir
		}
		if cmd.Flags().Changed("timeout") {
			opts.Timeout = time.Duration(reportTimeout) * time.Second
		}

		runner := report.NewRunner(db, dialect, opts)
		return runner.RunAll(ctx, catalog)
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportSaveCSV, "save-csv", false, "Write each result set to a CSV file")
	reportCmd.Flags().StringVar(&reportCSVDir, "csv-dir", "reports", "Directory for CSV output")
	reportCmd.Flags().IntVar(&reportTimeout, "timeout", 60, "Per-query statement timeout in seconds (0 disables)")

	rootCmd.AddCommand(reportCmd)
}
