package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apgen/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "apgen",
	Short: "apgen - synthetic accounts-payable data generator",
	Long: `apgen generates a linked, realistic accounts-payable dataset: vendors,
purchase orders, invoices and payments.

Generation is driven by a settings file (config/config.yaml) and a
description file (config/description_config.yaml). A fixed seed
reproduces the same dataset.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("apgen executed without a command")

		fmt.Println("Welcome to apgen!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
	rootCmd.PersistentFlags().String("config", "", "Settings YAML (default: $APGEN_CONFIG or config/config.yaml)")
	rootCmd.PersistentFlags().String("descriptions", "", "Description YAML (default: $APGEN_DESCRIPTIONS or config/description_config.yaml)")
}
