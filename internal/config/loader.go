package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). A .env file in
// the working directory is applied to the environment first, without
// overriding variables that are already set.
// The YAML file path is determined by CONFIG_PATH env (fallback
// "./casedesk.yaml"). If the file does not exist and CONFIG_PATH was not set
// explicitly, configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./casedesk.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func (c *Config) resolvePaths() error {
	if c.Log.File == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		c.Log.File = p
	}
	if c.Export.Dir == "" {
		d, err := DefaultExportDir()
		if err != nil {
			return fmt.Errorf("export dir: %w", err)
		}
		c.Export.Dir = d
	}
	return nil
}
