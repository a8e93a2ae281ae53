package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"classicseed/internal/config"
	"classicseed/internal/database"
)

var (
	cfgFile string
	Version = "1.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "classicseed",
	Short: "Synthetic dataset generator and report runner for the classicmodels schema",
	Long: `
classicseed populates a pre-existing classicmodels database with
referentially consistent synthetic data and runs a fixed catalog of
analytical queries against it.

Commands:
  seed      full dataset generation in one transaction
  backfill  multi-year order history, committed per simulated year
  append    one new order against an already-populated store
  daemon    append orders indefinitely with a randomized delay
  report    run the analytical query catalog, optionally saving CSVs

Database support: PostgreSQL, MySQL, SQLite. The connection URL is read
from the environment variable named in the config (DATABASE_URL by
default); credentials never live in config files.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("classicseed version %s\n", Version)
			os.Exit(0)
		}
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./classicseed.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

// connect loads and validates the config, then opens the configured store.
// Every subcommand funnels through here so provider support, URL sourcing,
// and connection behavior stay identical across commands.
func connect(ctx context.Context) (*config.Config, database.Dialect, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	url, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, nil, nil, err
	}

	dialect, err := database.New(cfg.Database.Provider, cfg.Database.Schema)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Open(ctx, dialect, url)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, dialect, db, nil
}

func initConfig() {
	// Missing .env is fine; the URL may come from the real environment.
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("classicseed.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
