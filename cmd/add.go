package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
)

var (
	flagAddDate        string
	flagAddInteractive bool
)

const addExample = `  fintrack add expense 12.50 food "lunch with Sam"
  fintrack add income 2500 salary --date 2025-06-01
  fintrack add --interactive`

var addCmd = &cobra.Command{
	Use:     "add income|expense <amount> <category> [description]",
	Short:   "Record a transaction",
	Example: addExample,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagAddInteractive {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.RangeArgs(3, 4)(cmd, args)
	},
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Transaction date YYYY-MM-DD (default today)")
	addCmd.Flags().BoolVarP(&flagAddInteractive, "interactive", "i", false, "Prompt for the transaction")
	rootCmd.AddCommand(addCmd)
}

// addInput is the raw user input for one transaction.
type addInput struct {
	kind        string
	amount      string
	category    string
	description string
	date        string
}

func runAdd(_ *cobra.Command, args []string) error {
	var in addInput
	if flagAddInteractive {
		var err error
		if in, err = promptTransaction(); err != nil {
			return err
		}
	} else {
		in = addInput{kind: args[0], amount: args[1], category: args[2], date: flagAddDate}
		if len(args) == 4 {
			in.description = args[3]
		}
	}

	kind, amount, err := validateAdd(in)
	if err != nil {
		return err
	}

	s, err := loadLedger()
	if err != nil {
		return err
	}
	t, err := s.AddTransactionOn(amount, in.category, in.description, kind, in.date)
	if err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}

	fmt.Printf("  Added %s: %s (%s) on %s\n", t.Kind, cli.FormatMoney(t.Amount), t.Category, t.Date)
	return nil
}

// validateAdd parses user input, rejecting anything the ledger would not accept.
func validateAdd(in addInput) (model.Kind, decimal.Decimal, error) {
	kind, err := model.ParseKind(in.kind)
	if err != nil {
		return "", decimal.Decimal{}, err
	}
	amount, err := parseAmount(in.amount)
	if err != nil {
		return "", decimal.Decimal{}, err
	}
	if strings.TrimSpace(in.category) == "" {
		return "", decimal.Decimal{}, errors.New("category must not be empty")
	}
	if in.date != "" {
		if _, err := time.Parse(model.DateLayout, in.date); err != nil {
			return "", decimal.Decimal{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", in.date)
		}
	}
	return kind, amount, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: not a number", s)
	}
	return d, nil
}

func promptTransaction() (addInput, error) {
	in := addInput{kind: string(model.Expense)}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.Expense)),
					huh.NewOption("Income", string(model.Income)),
				).
				Value(&in.kind),
			huh.NewInput().
				Title("Amount").
				Placeholder("12.50").
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}).
				Value(&in.amount),
			huh.NewInput().
				Title("Category").
				Placeholder("food").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}
					return nil
				}).
				Value(&in.category),
			huh.NewInput().
				Title("Description").
				Value(&in.description),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD, blank for today").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := time.Parse(model.DateLayout, s)
					return err
				}).
				Value(&in.date),
		),
	)

	if err := form.Run(); err != nil {
		return addInput{}, err
	}
	return in, nil
}
