package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/store"
)

var exportCmd = &cobra.Command{
	Use:     "export <db-path>",
	Short:   "Write a SQLite snapshot of the ledger",
	Example: "  fintrack export ~/finance.db",
	Args:    cobra.ExactArgs(1),
	RunE:    runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := loadLedger()
	if err != nil {
		return err
	}

	dbPath := args[0]
	prev, err := store.Export(cmd.Context(), dbPath, s.Transactions(), s.Budgets())
	if err != nil {
		return fmt.Errorf("exporting to %s: %w", dbPath, err)
	}

	log.WithField("path", dbPath).Debug("export complete")
	if !prev.ExportedAt.IsZero() {
		fmt.Printf("  Replaced snapshot from %s (%s transactions, %d budgets)\n",
			prev.ExportedAt.Local().Format("2006-01-02 15:04"),
			cli.FormatNumber(int64(prev.Transactions)), prev.Budgets)
	}
	fmt.Printf("  Exported %s transactions and %d budgets to %s\n",
		cli.FormatNumber(int64(s.Len())), len(s.Budgets()), dbPath)
	return nil
}
