package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, expenses and net for the period",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	days := periodDays(cmd)
	eng, s, err := loadEngine()
	if err != nil {
		return err
	}

	if s.Len() == 0 {
		fmt.Println("\n  No transactions recorded yet.")
		fmt.Println("  Add one with `fintrack add expense 12.50 food lunch`.")
		return nil
	}

	cf, err := eng.IncomeVsExpenses(days)
	if err != nil {
		return err
	}
	txs, err := eng.TransactionsInPeriod(days)
	if err != nil {
		return err
	}
	daily, err := eng.DailyTotals(days)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINANCIAL SUMMARY  Last %dd", days)))
	fmt.Println()

	rows := [][]string{
		{"Transactions", cli.FormatNumber(int64(len(txs)))},
		{"---"},
		{"Income", cli.FormatMoney(cf.Income)},
		{"Expenses", cli.FormatMoney(cf.Expenses)},
		{"---"},
		{"Net", cli.FormatMoney(cf.Net)},
	}
	if cf.Income.IsPositive() {
		rows = append(rows, []string{"Spent of income", cli.FormatShare(cf.Expenses, cf.Income)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	// DailyTotals is newest first; the sparkline reads left to right in time.
	spend := make([]float64, len(daily))
	for i, d := range daily {
		spend[len(daily)-1-i] = d.Expenses.InexactFloat64()
	}
	fmt.Println()
	fmt.Printf("  Daily spend  %s\n", cli.RenderSparkline(spend))
	fmt.Println()

	if cf.Net.IsNegative() {
		fmt.Println(cli.RenderVerdict(false, "Spending exceeds income for this period."))
	} else {
		fmt.Println(cli.RenderVerdict(true, "Income covers spending for this period."))
	}
	return nil
}
