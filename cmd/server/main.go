package main

import (
	"fmt"
	"os"

	"asf-backend/internal/config"
	"asf-backend/internal/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "asf-server",
	Short: "Invoice, client and manpower API for ASF operations",
	Long: `asf-server runs the ASF business-ops API: clients, manpower records,
GST invoices with sequential numbering, and company letterhead settings.

Running it without a subcommand is the same as "asf-server serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().Int("port", 0, "Server port (overrides config)")
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

// loadConfig reads configuration and switches the global logger over to it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	if err := logger.Setup(logger.LogConfig{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		TimeFormat: cfg.Log.TimeFormat,
		Output:     cfg.Log.Output,
	}); err != nil {
		return nil, fmt.Errorf("logger setup: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "logger setup: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
