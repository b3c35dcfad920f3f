package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the reader
type Config struct {
	DBPath      string // SQLite flight archive, disabled when empty
	DBBatchSize int    // fixes per insert batch
	GeoJSONPath string // GeoJSON track export, disabled when empty
	Report      ReportConfig
	Log         LogConfig
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	Format string // text, json or msgpack
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string // rotating log file, stderr when empty
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("db_path", "")
	v.SetDefault("db_batch_size", 500)
	v.SetDefault("geojson_path", "")
	v.SetDefault("report.format", "text")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	// Set config file name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Set config file search paths
	v.AddConfigPath("/etc/igc_reader")
	v.AddConfigPath(".")

	// Check for config file path from environment variable
	if configPath := os.Getenv("IGC_READER_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults + env vars
	}

	// Set environment variable prefix
	v.SetEnvPrefix("IGC_READER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		DBPath:      v.GetString("db_path"),
		DBBatchSize: v.GetInt("db_batch_size"),
		GeoJSONPath: v.GetString("geojson_path"),
		Report: ReportConfig{
			Format: strings.ToLower(v.GetString("report.format")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration after command line overrides have been applied
func Validate(cfg *Config) error {
	if err := validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.DBBatchSize <= 0 {
		return fmt.Errorf("db_batch_size must be greater than 0")
	}

	validReportFormats := map[string]bool{
		"text":    true,
		"json":    true,
		"msgpack": true,
	}
	if !validReportFormats[cfg.Report.Format] {
		return fmt.Errorf("invalid report format: %s (must be text, json, or msgpack)", cfg.Report.Format)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
