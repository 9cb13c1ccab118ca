package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Spending statistics and recommendations",
	Args:  cobra.NoArgs,
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
	days := periodDays(cmd)
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	ins, err := eng.FinancialInsights(days)
	if err != nil {
		return err
	}
	if ins.Empty() {
		fmt.Printf("\n  %s\n", ins.Message)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINANCIAL INSIGHTS  Last %dd", ins.PeriodDays)))
	fmt.Println()

	topCategory := "-"
	if ins.TopCategory != "" {
		topCategory = cli.Capitalize(ins.TopCategory)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Transactions", cli.FormatNumber(int64(ins.TotalTransactions))},
			{"Top category", topCategory},
			{"---"},
			{"Average expense", cli.FormatMoney(ins.AverageExpense)},
			{"Largest expense", cli.FormatMoney(ins.LargestExpense)},
			{"Smallest expense", cli.FormatMoney(ins.SmallestExpense)},
		},
	}))
	fmt.Println()

	if len(ins.Recommendations) == 0 {
		fmt.Println(cli.RenderVerdict(true, "Your finances look healthy. Keep it up!"))
		return nil
	}
	fmt.Println("  Recommendations")
	for _, r := range ins.Recommendations {
		fmt.Println(cli.RenderVerdict(false, "- "+r))
	}
	return nil
}
