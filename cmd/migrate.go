package main

import (
	"fmt"

	"reservation-engine/internal/handler/middleware"
	"reservation-engine/internal/infra/db"
	"reservation-engine/migrations"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

			pool, cleanup, err := db.Connect(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer cleanup()

			applied, err := db.Migrate(ctx, pool, migrations.FS, logger)
			if err != nil {
				return err
			}
			logger.Info("migrations complete", "applied", applied)
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", applied)
			return nil
		},
	}
}
