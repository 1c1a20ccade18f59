package main

import (
	"context"

	"github.com/spf13/cobra"

	"purelife/internal/infra"
	"purelife/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := infra.OpenDatabase(cfg.Database)
			if err != nil {
				return err
			}
			defer infra.CloseDatabase(db)

			if err := migrate(context.Background(), db, cfg.Admin); err != nil {
				return err
			}
			logger.Info("migration complete")
			return nil
		},
	}
}
