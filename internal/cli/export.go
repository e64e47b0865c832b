package cli

import (
	"fmt"
	"os"

	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/config"
	"github.com/sangkips/aluworks-api/internal/infrastructure/repository"
	"github.com/sangkips/aluworks-api/pkg/utils"
	"github.com/spf13/cobra"
)

// ExportCmd writes the budget of a project to an XLSX file
func ExportCmd(load func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "export [project-id] [out.xlsx]",
		Short: "Export a project budget to an XLSX workbook",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := utils.ParseUUID(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			cfg := load()
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			tx := repository.NewTransactor(db)
			budgets := service.NewBudgetService(repository.NewProjectRepository(db), repository.NewBudgetRepository(db), tx)
			settings := service.NewSettingsService(repository.NewWorkshopProfileRepository(db), cfg.Workshop)

			data, filename, err := service.NewExportService(budgets, settings).ExportBudget(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			out := filename
			if len(args) == 2 {
				out = args[1]
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
}
