// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the application.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	SchemaDir     string
	TempUploadDir string
	XMLFilePrefix string
	RateLimit     string
}

// LoadConfig reads settings from the environment. Missing optional values
// fall back to defaults with a warning; a missing database URL is left for
// the caller to reject.
func LoadConfig(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("SCHEMA_DIR", "schemas")
	v.SetDefault("TEMP_UPLOAD_DIR", "temp_uploads")
	v.SetDefault("XML_FILE_PREFIX", "jpk_wb")
	v.SetDefault("RATE_LIMIT", "30-M")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		SchemaDir:     v.GetString("SCHEMA_DIR"),
		TempUploadDir: v.GetString("TEMP_UPLOAD_DIR"),
		XMLFilePrefix: v.GetString("XML_FILE_PREFIX"),
		RateLimit:     v.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL is not set")
	}
	return cfg, nil
}
