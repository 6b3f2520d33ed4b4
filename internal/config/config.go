package config

import (
	"fmt"
	"os"
	"strings"

	"apgen/internal/logger"
)

type Config struct {
	// Input configuration files
	SettingsPath     string
	DescriptionsPath string

	// Metrics textfile written after a run, empty to skip
	MetricsFile string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		SettingsPath:     getEnv("APGEN_CONFIG", "config/config.yaml"),
		DescriptionsPath: getEnv("APGEN_DESCRIPTIONS", "config/description_config.yaml"),
		MetricsFile:      getEnv("APGEN_METRICS_FILE", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:        getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.SettingsPath == "" {
		return fmt.Errorf("APGEN_CONFIG must not be empty")
	}
	if c.DescriptionsPath == "" {
		return fmt.Errorf("APGEN_DESCRIPTIONS must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
