package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apgen/internal/description"
	"apgen/internal/generator"
	"apgen/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings and description files",
	Long: `Load and validate both configuration files without generating data.
Checks that every item category and the vendor description category
have description templates.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("validate")

	_, settingsPath, descriptionsPath, err := inputPaths(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd, settingsPath, log)
	if err != nil {
		return err
	}

	source, err := generator.NewSource(settings.General.Seed)
	if err != nil {
		return err
	}
	descriptions, err := description.Load(descriptionsPath, source.Rand)
	if err != nil {
		return fmt.Errorf("failed to load descriptions: %w", err)
	}
	if err := generator.CheckDescriptions(settings, descriptions); err != nil {
		return err
	}

	log.Info().
		Str("settings", settingsPath).
		Str("descriptions", descriptionsPath).
		Msg("Configuration is valid")

	fmt.Printf("Settings:     %s\n", settingsPath)
	fmt.Printf("Descriptions: %s\n", descriptionsPath)
	fmt.Printf("Date range:   %s .. %s\n", settings.General.StartDate, settings.General.EndDate)
	fmt.Printf("Regions:      %s\n", strings.Join(settings.RegionNames(), ", "))
	fmt.Printf("Categories:   %s\n", strings.Join(settings.Items.Categories, ", "))
	fmt.Printf("Vendors: %d, purchase orders: %d\n", settings.Vendors.TotalCount, settings.PurchaseOrders.TotalCount)
	fmt.Printf("Output:       %s in %s\n", settings.General.OutputFormat, settings.General.OutputDir)
	return nil
}
