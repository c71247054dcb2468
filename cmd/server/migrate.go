package main

import (
	"asf-backend/internal/database"
	"asf-backend/internal/db"
	"asf-backend/migrations"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		pool, err := db.Connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.NewMigrator(pool, migrations.FS).RunMigrations(cmd.Context()); err != nil {
			return err
		}
		log.Info().Msg("migrations up to date")
		return nil
	},
}
