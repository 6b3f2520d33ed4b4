package cmd

import (
	"github.com/spf13/cobra"

	"apgen/internal/config"
)

// inputPaths resolves the settings and description files, preferring flags
// over the process configuration.
func inputPaths(cmd *cobra.Command) (*config.Config, string, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", "", err
	}

	settingsPath := cfg.SettingsPath
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		settingsPath = p
	}
	descriptionsPath := cfg.DescriptionsPath
	if p, _ := cmd.Flags().GetString("descriptions"); p != "" {
		descriptionsPath = p
	}
	return cfg, settingsPath, descriptionsPath, nil
}
