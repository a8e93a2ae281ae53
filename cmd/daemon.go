package cmd

import (
	"fmt"
	"math/rand/v2"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"classicseed/internal/gen"
	"classicseed/internal/seeder"
)

var (
	daemonMinDelay time.Duration
	daemonMaxDelay time.Duration
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Append orders continuously until interrupted",
	Long: `Runs the appender in a loop, inserting one order per iteration with a
randomized delay between iterations. A failed iteration is logged and the
loop continues; SIGINT or SIGTERM stops it cleanly after the current order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if daemonMinDelay <= 0 || daemonMaxDelay < daemonMinDelay {
			return fmt.Errorf("invalid delay range %v..%v", daemonMinDelay, daemonMaxDelay)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		_, dialect, db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		s := seeder.New(db, dialect, gen.New(0), seeder.Counts{})

		color.Cyan("🔁 Appending orders every %v..%v (Ctrl+C to stop)...", daemonMinDelay, daemonMaxDelay)
		for i := 1; ; i++ {
			if _, err := s.AppendOrder(ctx); err != nil {
				if ctx.Err() != nil {
					break
				}
				color.Yellow("⚠️  iteration %d failed, continuing: %v", i, err)
			}

			delay := daemonMinDelay + rand.N(daemonMaxDelay-daemonMinDelay+1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				color.Cyan("🛑 Stopping after %d iterations", i)
				return nil
			}
		}

		color.Cyan("🛑 Stopped")
		return nil
	},
}

func init() {
	daemonCmd.Flags().DurationVar(&daemonMinDelay, "min-delay", 5*time.Second, "Minimum delay between appended orders")
	daemonCmd.Flags().DurationVar(&daemonMaxDelay, "max-delay", 20*time.Second, "Maximum delay between appended orders")

	rootCmd.AddCommand(daemonCmd)
}
