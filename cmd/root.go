package cmd

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/logging"
	"github.com/theirongolddev/fintrack/internal/report"
)

var (
	flagFile     string
	flagDays     int
	flagQuiet    bool
	flagLogLevel string
)

// Resolved once per invocation in PersistentPreRunE.
var cfg = config.DefaultConfig()

var log logrus.FieldLogger

var rootCmd = &cobra.Command{
	Use:               "fintrack",
	Short:             "Personal finance ledger",
	Long:              "Record income and expenses, set category budgets, and see where your money goes.",
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Ledger file (default from config, then ./"+ledger.DefaultFile+")")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", report.DefaultDays, "Reporting window in days")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// preRun resolves config, environment and flags into cfg and log.
func preRun(cmd *cobra.Command, _ []string) error {
	config.LoadDotEnv()

	loaded, err := config.Load()
	cfg = loaded

	level := cfg.Logging.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagQuiet {
		level = logrus.ErrorLevel.String()
	}
	log = logging.New(level, cmd.ErrOrStderr())

	if err != nil {
		log.WithError(err).WithField("path", config.Path()).Warn("config unusable, using defaults")
	}
	return nil
}

// periodDays is --days when given, otherwise the configured default.
func periodDays(cmd *cobra.Command) int {
	if cmd.Flags().Changed("days") {
		return flagDays
	}
	return cfg.General.DefaultDays
}

// ledgerPath is --file when given, otherwise the configured data file.
// Relative configured paths resolve against the working directory.
func ledgerPath() string {
	if flagFile != "" {
		return flagFile
	}
	if cfg.General.DataFile != "" {
		return filepath.Clean(cfg.General.DataFile)
	}
	return ledger.DefaultFile
}

// loadLedger is the shared data loading path used by all commands.
func loadLedger() (*ledger.Store, error) {
	if log == nil {
		log = logging.New(cfg.Logging.Level, nil)
	}
	return ledger.Load(ledgerPath(), log)
}

// loadEngine loads the ledger and wraps it in a report engine.
func loadEngine() (*report.Engine, *ledger.Store, error) {
	s, err := loadLedger()
	if err != nil {
		return nil, nil, err
	}
	return report.New(s), s, nil
}
