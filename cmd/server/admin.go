package main

import (
	"errors"

	"asf-backend/internal/auth"
	"asf-backend/internal/db"
	"asf-backend/internal/repositories"
	"asf-backend/internal/services"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the first admin-sup account if the email is unused",
	Example: `  asf-server create-admin --email owner@asf.in --password 'changeme' \
    --first-name Asha --last-name Rao`,
	RunE: runCreateAdmin,
}

func init() {
	f := createAdminCmd.Flags()
	f.String("email", "", "Admin email (required)")
	f.String("password", "", "Admin password (required)")
	f.String("first-name", "Admin", "First name")
	f.String("last-name", "User", "Last name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pool, err := db.Connect(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := services.NewUserService(repositories.NewUserRepository(pool), auth.NewJWTManager(cfg))
	created, err := users.EnsureAdmin(cmd.Context(), firstName, lastName, email, password)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("email", email).Msg("admin-sup account created")
	} else {
		log.Info().Str("email", email).Msg("account already exists, nothing to do")
	}
	return nil
}
