package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.UI.validate(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json (got %q)", l.Format)
	}
	return nil
}

func (u *UIConfig) validate() error {
	if strings.TrimSpace(u.CurrentUser) == "" {
		return fmt.Errorf("current_user must not be empty")
	}
	if u.RecentCases <= 0 {
		return fmt.Errorf("recent_cases must be > 0 (got %d)", u.RecentCases)
	}
	if u.UpcomingCourtDates <= 0 {
		return fmt.Errorf("upcoming_court_dates must be > 0 (got %d)", u.UpcomingCourtDates)
	}
	return nil
}
