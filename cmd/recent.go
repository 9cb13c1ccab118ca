package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Recent transactions, newest first (default last 7 days)",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, _ []string) error {
	days := cfg.General.RecentDays
	if cmd.Flags().Changed("days") {
		days = flagDays
	}

	eng, _, err := loadEngine()
	if err != nil {
		return err
	}
	txs, err := eng.Recent(days)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Printf("\n  No transactions in the last %d days.\n", days)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RECENT TRANSACTIONS  Last %dd", days)))
	fmt.Println()

	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []string{
			t.Date,
			cli.FormatSignedMoney(t.Amount, t.Kind),
			cli.Capitalize(t.Category),
			t.Description,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Amount", "Category", "Description"},
		Rows:    rows,
	}))
	return nil
}
