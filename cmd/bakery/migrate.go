package main

import (
	"fmt"

	"github.com/goliatone/go-bakery/adapters/gologger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := gologger.NewSlogLogger(cmd.ErrOrStderr(), gologger.ParseLevel(logLevel))
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		if !cfg.DatabaseConfigured() {
			return fmt.Errorf("bakery: DATABASE_URL is required to migrate")
		}
		client, err := openPersistence(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("migrations applied", "driver", cfg.DatabaseDriver())
		return nil
	},
}
