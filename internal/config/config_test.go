package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("APGEN_CONFIG", "custom.yaml")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", cfg.SettingsPath)
	assert.Equal(t, "config/description_config.yaml", cfg.DescriptionsPath)

	logCfg := cfg.GetLoggerConfig()
	assert.Equal(t, "json", logCfg.Format)
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "stderr", logCfg.Output)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	assert.Error(t, err)
}
