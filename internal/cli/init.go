// Package cli provides common initialization shared by the server and
// worker binaries.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"rentroll/internal/config"
	applog "rentroll/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the configured level and
// sets it as the process default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	cfg.Handler = nil
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// ValidateConfigOrExit validates the loaded configuration and exits the
// process on failure. Validation runs after logger setup so failures are
// reported through the structured logger.
func ValidateConfigOrExit(cfg *config.Config, logger *applog.Logger) {
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
}
