package cli

import (
	"context"
	"fmt"
	"lexi_backend/internal/app"
	"lexi_backend/internal/config"

	"github.com/spf13/cobra"
)

// NewSeedCmd loads a YAML fixture. Existing rows are left alone.
func NewSeedCmd(configDir *string) *cobra.Command {
	var (
		file    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the admin account and sample content",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			cfg.ForceMigrate = migrate

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close(context.Background())

			report, err := application.Seed(file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seed OK: %d admin, %d categories, %d materials, %d quizzes created\n",
				report.Admins, report.Categories, report.Materials, report.Quizzes)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "configs/seed.yaml", "seed fixture")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run AutoMigrate first")
	return cmd
}
