package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Chanakan5591/carbonyx/config"
	"github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"
	"github.com/Chanakan5591/carbonyx/internal/domain/entity"
	"github.com/Chanakan5591/carbonyx/internal/infra/cache"
	"github.com/Chanakan5591/carbonyx/internal/infra/db"
	rollupcache "github.com/Chanakan5591/carbonyx/internal/integration/cache"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/dto"
	"github.com/Chanakan5591/carbonyx/internal/integration/persistence"
)

func newRollupCommand(cfg *config.Config) *cobra.Command {
	var (
		organizationID string
		at             string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Compute an organization's rollup from the database",
		Long: `Compute the monthly and yearly rollup of one organization, bypassing the cache.

Examples:
  rollupctl rollup --org org_123
  rollupctl rollup --org org_123 --at 2024-06-15T00:00:00Z --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at value %q: %w", at, err)
				}
				now = parsed
			}

			database, err := db.NewPostgresConnection(cmd.Context(), &cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			useCase := emission.NewComputeRollupUseCase(persistence.NewEmissionDataStore(database.DB()), nil, emission.RollupConfig{
				Years:    cfg.Rollup.Years,
				Location: cfg.Rollup.Location,
			})
			result, err := useCase.Execute(cmd.Context(), emission.ComputeRollupInput{
				OrganizationID: organizationID,
				Now:            now,
			})
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(dto.ToRollupResponse(result))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRollup(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&organizationID, "org", "", "organization ID")
	cmd.Flags().StringVar(&at, "at", "", "compute as of this RFC 3339 time instead of now")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API JSON representation")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func newFactorsCommand(cfg *config.Config) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List the emission factor catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := db.NewPostgresConnection(cmd.Context(), &cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			input := emission.ListEmissionFactorsInput{}
			if category != "" {
				categoryType := entity.CategoryType(category)
				input.CategoryType = &categoryType
			}

			outputs, err := emission.NewListEmissionFactorsUseCase(persistence.NewEmissionDataStore(database.DB())).
				Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderFactors(outputs))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list factors of this category type")

	return cmd
}

func newInvalidateCommand(cfg *config.Config) *cobra.Command {
	var organizationID string

	cmd := &cobra.Command{
		Use:   "invalidate",
		Short: "Drop an organization's cached rollups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rdb, err := cache.NewRedisConnection(&cfg.Redis)
			if err != nil {
				return err
			}
			defer rdb.Close()

			if err := rollupcache.NewRollupCache(rdb.Client(), cfg.Rollup.CacheTTL).Invalidate(cmd.Context(), organizationID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cached rollups dropped for %s\n", organizationID)
			return nil
		},
	}

	cmd.Flags().StringVar(&organizationID, "org", "", "organization ID")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func newMigrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := db.NewPostgresConnection(cmd.Context(), &cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
