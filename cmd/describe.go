package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"apgen/internal/description"
	"apgen/internal/generator"
	"apgen/internal/logger"
)

var describeCmd = &cobra.Command{
	Use:   "describe [category]",
	Short: "Print sample item descriptions for a category",
	Long: `Generate sample item descriptions for one category of the description
configuration. Useful when editing templates and word lists.`,
	Example: `  # Five sample electronics descriptions
  apgen describe Electronics -n 5

  # Reproducible samples
  apgen describe "Office Supplies" --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().IntP("count", "n", 3, "Number of descriptions to print")
	describeCmd.Flags().Uint64("seed", 0, "Random seed; 0 picks one")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("describe")
	category := args[0]

	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	_, _, descriptionsPath, err := inputPaths(cmd)
	if err != nil {
		return err
	}

	source, err := generator.NewSource(seed)
	if err != nil {
		return err
	}
	descriptions, err := description.Load(descriptionsPath, source.Rand)
	if err != nil {
		return fmt.Errorf("failed to load descriptions: %w", err)
	}
	if !descriptions.HasCategory(category) {
		return fmt.Errorf("%w: %q", description.ErrUnknownCategory, category)
	}

	log.Debug().
		Str("category", category).
		Int("count", count).
		Uint64("seed", source.Seed).
		Msg("Generating sample descriptions")

	for i := 0; i < count; i++ {
		item, err := descriptions.ItemDescription(category)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s: %s\n", item.Brand, item.Model, item.Description)
	}
	return nil
}
