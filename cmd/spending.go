package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
)

var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Expenses by category, largest first",
	Args:  cobra.NoArgs,
	RunE:  runSpending,
}

func init() {
	rootCmd.AddCommand(spendingCmd)
}

func runSpending(cmd *cobra.Command, _ []string) error {
	days := periodDays(cmd)
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	totals, err := eng.SpendingByCategory(days)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Printf("\n  No expenses in the last %d days.\n", days)
		return nil
	}

	var sum decimal.Decimal
	for _, ct := range totals {
		sum = sum.Add(ct.Total)
	}
	top := totals[0].Total.InexactFloat64()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING BY CATEGORY  Last %dd", days)))
	fmt.Println()

	rows := make([][]string, 0, len(totals)+2)
	for _, ct := range totals {
		rows = append(rows, []string{
			cli.Capitalize(ct.Category),
			cli.FormatMoney(ct.Total),
			cli.FormatShare(ct.Total, sum),
		})
	}
	rows = append(rows, []string{"---"}, []string{"Total", cli.FormatMoney(sum), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Spent", "Share"},
		Rows:    rows,
	}))
	fmt.Println()

	for _, ct := range totals {
		fmt.Printf("  %-14s %s\n", cli.Capitalize(ct.Category),
			cli.RenderHorizontalBar(ct.Total.InexactFloat64(), top, 30))
	}
	return nil
}
