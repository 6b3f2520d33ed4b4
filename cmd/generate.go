package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"apgen/internal/config"
	"apgen/internal/description"
	"apgen/internal/generator"
	"apgen/internal/logger"
	"apgen/internal/metrics"
	"apgen/internal/output"
	"apgen/internal/reconciliation"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate vendors, purchase orders, invoices and payments",
	Long: `Generate a complete accounts-payable dataset and write one file per
collection (vendors, purchase_orders, invoices, payments) plus a
manifest.json into the output directory.

Flags and APGEN_* environment variables override the general section
of the settings file:
  APGEN_FORMAT, APGEN_OUTPUT_DIR, APGEN_SEED, APGEN_RATE`,
	Example: `  # Generate with the default configuration
  apgen generate

  # Reproducible JSON output
  apgen generate --seed 42 -f json -o out/

  # Unthrottled run with metrics written for node_exporter
  apgen generate --rate 0 --metrics-file apgen.prom`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP(config.KeyOutputDir, "o", "", "Output directory (overrides general.output_dir)")
	generateCmd.Flags().StringP(config.KeyFormat, "f", "", "Output format: csv, json or xlsx (overrides general.output_format)")
	generateCmd.Flags().Uint64(config.KeySeed, 0, "Random seed; 0 picks one (overrides general.seed)")
	generateCmd.Flags().Float64(config.KeyRate, 0, "Max records per second per stage; 0 is unlimited (overrides general.max_operations_per_second)")
	generateCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	generateCmd.Flags().Bool("progress", false, "Show per-stage progress bars on stderr")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	cfg, settingsPath, descriptionsPath, err := inputPaths(cmd)
	if err != nil {
		return err
	}
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	showProgress, _ := cmd.Flags().GetBool("progress")

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
		log.Error().
			Err(err).
			Str("file", descriptionsPath).
			Msg("Failed to load description configuration")
		return fmt.Errorf("failed to load descriptions: %w", err)
	}

	recorder := metrics.NewRecorder()
	opts := []generator.Option{generator.WithRecorder(recorder)}
	if showProgress {
		opts = append(opts, generator.WithProgress(newBarProgress(os.Stderr)))
	}

	pipeline, err := generator.NewPipeline(settings, descriptions, source, opts...)
	if err != nil {
		return handleGenerateError(err, log)
	}

	writer, err := output.NewWriter(settings.General.OutputDir, settings.General.OutputFormat)
	if err != nil {
		return err
	}

	ctx, cancel := createRunContext(log)
	defer cancel()

	log.Info().
		Uint64("seed", source.Seed).
		Str("run_id", source.RunID).
		Str("format", settings.General.OutputFormat).
		Str("output_dir", settings.General.OutputDir).
		Float64("rate", settings.General.MaxOperationsPerSecond).
		Msg("Starting generation")

	startTime := time.Now()
	dataset, err := pipeline.Run(ctx)
	if err != nil {
		return handleGenerateError(err, log)
	}

	if report := reconciliation.NewReconciler().Reconcile(dataset); !report.OK() {
		for _, issue := range report.Issues {
			log.Error().Str("issue", issue.String()).Msg("Generated dataset is inconsistent")
		}
		return fmt.Errorf("generated dataset failed %d consistency checks", len(report.Issues))
	}

	manifest, err := writer.WriteDataset(dataset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to write dataset")
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	if metricsFile != "" {
		if err := recorder.WriteTextfile(metricsFile); err != nil {
			log.Warn().Err(err).Str("file", metricsFile).Msg("Failed to write metrics")
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Strs("files", manifest.Files).
		Msg("Generation completed successfully")

	printSummary(manifest, writer.Dir())
	return nil
}

// loadSettings reads the settings file and applies flag and environment overrides.
func loadSettings(cmd *cobra.Command, path string, log zerolog.Logger) (*config.Settings, error) {
	settings, err := config.LoadSettings(path)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", path).
			Msg("Failed to load settings")
		return nil, err
	}

	overrides, err := config.NewOverrides(cmd.Flags())
	if err != nil {
		return nil, err
	}
	settings, err = settings.ApplyOverrides(overrides)
	if err != nil {
		log.Error().Err(err).Msg("Invalid settings override")
		return nil, err
	}
	return settings, nil
}

// createRunContext returns a context cancelled on SIGINT or SIGTERM.
func createRunContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, stopping generation")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// handleGenerateError turns generation failures into user-facing messages.
func handleGenerateError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Generation failed")

	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("generation was canceled")
	case errors.Is(err, generator.ErrMissingDescriptionCategory):
		return fmt.Errorf("description configuration is incomplete. Add templates for every item category: %w", err)
	case errors.Is(err, description.ErrNoWordForTag):
		return fmt.Errorf("a template uses a part-of-speech tag the lexicon has no word for: %w", err)
	case errors.Is(err, generator.ErrIDSpaceExhausted):
		return fmt.Errorf("too many records requested for the identifier format: %w", err)
	default:
		return fmt.Errorf("generation failed: %w", err)
	}
}

func printSummary(m *output.Manifest, dir string) {
	fmt.Printf("Run %s (seed %d)\n", m.RunID, m.Seed)
	for _, stage := range []string{
		generator.StageVendors,
		generator.StagePurchaseOrders,
		generator.StageInvoices,
		generator.StagePayments,
	} {
		fmt.Printf("  %-16s %d\n", stage, m.Counts[stage])
	}
	fmt.Printf("Wrote %d files to %s\n", len(m.Files)+1, dir)
}
