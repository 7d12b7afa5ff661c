// Package config loads casedesk settings from an optional YAML file, the
// environment and a local .env file.
package config

import (
	"os"
	"path/filepath"
)

// Config is the root application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Seed   SeedConfig   `yaml:"seed"`
	Export ExportConfig `yaml:"export"`
	UI     UIConfig     `yaml:"ui"`
}

// LogConfig controls the file logger. The terminal belongs to the UI, so
// logs never go to stdout or stderr. File "-" discards everything.
type LogConfig struct {
	Level  string `yaml:"level"  env:"CASEDESK_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"CASEDESK_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"CASEDESK_LOG_FILE"`
}

// Discard reports whether logging is switched off.
func (c LogConfig) Discard() bool { return c.File == "-" }

// SeedConfig decides whether the store starts with the example records.
// The flag is negative because env-default also fills an explicit false.
type SeedConfig struct {
	Disabled bool `yaml:"disabled" env:"CASEDESK_SEED_DISABLED"`
}

func (c SeedConfig) Enabled() bool { return !c.Disabled }

type ExportConfig struct {
	Dir string `yaml:"dir" env:"CASEDESK_EXPORT_DIR"`
}

// UIConfig tunes what the views show.
type UIConfig struct {
	Title              string `yaml:"title"                env:"CASEDESK_TITLE"                env-default:"casedesk"`
	CurrentUser        string `yaml:"current_user"         env:"CASEDESK_CURRENT_USER"         env-default:"Current User"`
	RecentCases        int    `yaml:"recent_cases"         env:"CASEDESK_RECENT_CASES"         env-default:"5"`
	UpcomingCourtDates int    `yaml:"upcoming_court_dates" env:"CASEDESK_UPCOMING_COURT_DATES" env-default:"3"`
}

// DefaultLogPath returns the log file location used when none is configured.
func DefaultLogPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "casedesk", "casedesk.log"), nil
}

// DefaultExportDir returns the directory exports land in when none is
// configured.
func DefaultExportDir() (string, error) {
	return os.UserHomeDir()
}
