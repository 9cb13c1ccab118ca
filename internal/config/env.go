package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataFile    = "FINTRACK_DATA_FILE"
	EnvDefaultDays = "FINTRACK_DEFAULT_DAYS"
	EnvLogLevel    = "FINTRACK_LOG_LEVEL"
)

// LoadDotEnv loads variables from a .env file in the working directory, if
// present. Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides cfg with any FINTRACK_* variables that are set.
// Unparseable numbers are ignored.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDataFile)); v != "" {
		cfg.General.DataFile = v
	}
	if v := os.Getenv(EnvDefaultDays); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.DefaultDays = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
}
