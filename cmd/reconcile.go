package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"apgen/internal/generator"
	"apgen/internal/logger"
	"apgen/internal/reconciliation"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [dataset-dir]",
	Short: "Check a generated dataset for consistency",
	Long: `Read a dataset written with --format json and cross-check it:
purchase orders reference existing vendors and regions they serve,
invoices add up and reference their order's items, and payments only
settle Approved or Paid invoices without exceeding the invoice total.

Exits with an error when any invariant is broken.`,
	Example: `  # Generate and reconcile a JSON dataset
  apgen generate -f json -o out/
  apgen reconcile out/

  # Show at most 5 issues
  apgen reconcile out/ --max-issues 5`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().Int("max-issues", 20, "Maximum number of issues to print (0 prints all)")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("reconcile")

	maxIssues, _ := cmd.Flags().GetInt("max-issues")
	if maxIssues < 0 {
		return fmt.Errorf("--max-issues must not be negative")
	}
	dir := args[0]

	log.Info().Str("dir", dir).Msg("Starting dataset reconciliation")

	dataset, err := reconciliation.NewDataReader(dir).ReadDataset()
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	report := reconciliation.NewReconciler().Reconcile(dataset)
	printReport(report, maxIssues)

	if !report.OK() {
		return fmt.Errorf("dataset has %d consistency issues", len(report.Issues))
	}
	return nil
}

func printReport(report *reconciliation.Report, maxIssues int) {
	for _, stage := range []string{
		generator.StageVendors,
		generator.StagePurchaseOrders,
		generator.StageInvoices,
		generator.StagePayments,
	} {
		fmt.Printf("  %-16s %d checked\n", stage, report.Checked[stage])
	}
	fmt.Printf("Drifted invoice items: %d (max price drift %.2f%%)\n", report.DriftedItems, report.MaxPriceDrift)

	if report.OK() {
		fmt.Println("No consistency issues found")
		return
	}

	byRule := make(map[string]int)
	for _, issue := range report.Issues {
		byRule[issue.Rule]++
	}
	rules := make([]string, 0, len(byRule))
	for rule := range byRule {
		rules = append(rules, rule)
	}
	sort.Strings(rules)

	fmt.Printf("%d consistency issues:\n", len(report.Issues))
	for _, rule := range rules {
		fmt.Printf("  %-28s %d\n", rule, byRule[rule])
	}
	for i, issue := range report.Issues {
		if maxIssues > 0 && i >= maxIssues {
			fmt.Printf("  ... %d more\n", len(report.Issues)-maxIssues)
			break
		}
		fmt.Printf("  %s\n", issue)
	}
}
