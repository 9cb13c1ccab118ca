package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/report"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show budget status for the last 30 days",
	Args:  cobra.NoArgs,
	RunE:  runBudget,
}

var budgetSetCmd = &cobra.Command{
	Use:     "set <category> <amount>",
	Short:   "Set the spending limit for a category",
	Example: "  fintrack budget set food 400",
	Args:    cobra.ExactArgs(2),
	RunE:    runBudgetSet,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := loadLedger()
	if err != nil {
		return err
	}
	if err := s.SetBudget(args[0], amount); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}

	fmt.Printf("  Budget for %s set to %s\n", cli.Capitalize(args[0]), cli.FormatMoney(amount))
	return nil
}

func runBudget(_ *cobra.Command, _ []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	statuses, err := eng.BudgetStatusList()
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Println("\n  No budgets set.")
		fmt.Println("  Set one with `fintrack budget set food 400`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET STATUS  Last %dd", report.DefaultDays)))
	fmt.Println()

	rows := make([][]string, 0, len(statuses))
	for _, bs := range statuses {
		rows = append(rows, []string{
			cli.Capitalize(bs.Category),
			cli.FormatMoney(bs.Budget),
			cli.FormatMoney(bs.Spent),
			cli.FormatMoney(bs.Remaining),
			cli.FormatPercent(bs.Percentage),
			cli.RenderBudgetLevel(bs.Level()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Budget", "Spent", "Remaining", "Used", "Status"},
		Rows:    rows,
	}))
	return nil
}
