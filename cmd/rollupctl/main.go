// Package main provides rollupctl, an operator CLI for the emission rollup engine.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Chanakan5591/carbonyx/config"
)

func main() {
	_ = godotenv.Load()

	// Logs go to stderr so command output stays pipeable.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := newRootCommand(config.Load()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rollupctl",
		Short: "Inspect and maintain Carbonyx emission rollups",
		Long: `rollupctl computes emission rollups straight from the database and manages the rollup cache.

Commands:
  rollup      Compute an organization's rollup
  factors     List the emission factor catalogue
  invalidate  Drop an organization's cached rollups
  migrate     Apply database migrations`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRollupCommand(cfg))
	rootCmd.AddCommand(newFactorsCommand(cfg))
	rootCmd.AddCommand(newInvalidateCommand(cfg))
	rootCmd.AddCommand(newMigrateCommand(cfg))

	return rootCmd
}
