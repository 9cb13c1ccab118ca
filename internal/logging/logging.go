// Package logging builds the diagnostic logger shared by the CLI and the ledger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out (stderr when nil) at the named
// level. Unknown level names fall back to info.
func New(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	return &logrus.Logger{
		Out: out,
		Formatter: &logrus.TextFormatter{
			DisableTimestamp:       true,
			DisableLevelTruncation: true,
		},
		Hooks:    make(logrus.LevelHooks),
		Level:    lvl,
		ExitFunc: os.Exit,
	}
}
