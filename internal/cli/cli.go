// Package cli holds the workshopctl subcommands.
package cli

import (
	"fmt"

	"github.com/sangkips/aluworks-api/internal/config"
	"github.com/sangkips/aluworks-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootCmd assembles workshopctl. cfg is loaded lazily so commands that do
// not need configuration still run without a .env file.
func RootCmd(load func() *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "workshopctl",
		Short:         "Aluworks workshop administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		MigrateCmd(load),
		EstimateCmd(load),
		ExportCmd(load),
		TokenCmd(load),
	)
	return root
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// MigrateCmd creates or updates the schema and seeds the workshop profile
func MigrateCmd(load func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed the workshop profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			if seed, _ := cmd.Flags().GetBool("seed"); seed {
				if err := database.SeedDefaultData(db, &cfg.Workshop); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
	cmd.Flags().Bool("seed", true, "create the workshop profile when missing")
	return cmd
}
