// Package cmd implements the pacebudget command line.
package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pacebudget/backend/internal/config"
	"github.com/pacebudget/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:               "pacebudget",
	Short:             "Budget periods, forecasts and insights",
	Long:              "pacebudget tracks the spending of a budgeting period against its allocations and tells you whether you are on pace.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runServe,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and sets up logging for all commands.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(); err != nil {
		return err
	}

	cfg = config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	setupLogging(cfg, cmd.ErrOrStderr())
	return nil
}

// setupLogging configures the global logger. Human readable output is used
// when LOG_FORMAT is "human" or gin runs in debug mode without LOG_FORMAT.
func setupLogging(c config.Config, w io.Writer) {
	output := w
	if c.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: w}
	}

	zerolog.SetGlobalLevel(c.Level())
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// connect opens the database, creating its directory if needed.
func connect() error {
	err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		return err
	}

	return models.Connect(cfg.DBPath + "?_pragma=foreign_keys(1)")
}

// disconnect closes the database connection.
func disconnect() {
	sqlDB, err := models.DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("closing database")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("closing database")
	}
}
