// Package config loads the budgetctl configuration: a JSON file under
// the data directory, with optional overrides from the environment (a
// .env file is honored if present).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the flat budgetctl configuration
type Config struct {
	DBPath               string `json:"db_path"`
	BackupDir            string `json:"backup_dir"`
	AlertThresholdMonths int    `json:"alert_threshold_months"`
}

// DefaultDataDir returns ~/.budgetctl.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".budgetctl"), nil
}

// Default returns the configuration used when no config file exists.
func Default() (*Config, error) {
	dataDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DBPath:               filepath.Join(dataDir, "budget.db"),
		BackupDir:            filepath.Join(dataDir, "backups"),
		AlertThresholdMonths: 6,
	}, nil
}

// Load reads config.json from dir (the data directory), falling back to
// defaults when absent, then applies environment overrides. A .env file
// in the working directory is loaded first if present.
func Load(dir string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Overrides: .env is optional, a missing file is not an error.
	_ = godotenv.Load()
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BUDGETCTL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BUDGETCTL_BACKUP_DIR"); v != "" {
		cfg.BackupDir = v
	}
	if v := os.Getenv("BUDGETCTL_ALERT_MONTHS"); v != "" {
		if months, err := strconv.Atoi(v); err == nil && months > 0 {
			cfg.AlertThresholdMonths = months
		}
	}
}

// Save writes config.json to dir
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
