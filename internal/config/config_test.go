package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AlertThresholdMonths != 6 {
		t.Errorf("AlertThresholdMonths = %d, want 6", cfg.AlertThresholdMonths)
	}
	if cfg.DBPath == "" || cfg.BackupDir == "" {
		t.Error("default paths should be populated")
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()

	want := &Config{
		DBPath:               filepath.Join(dir, "test.db"),
		BackupDir:            filepath.Join(dir, "backups"),
		AlertThresholdMonths: 3,
	}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.DBPath != want.DBPath {
		t.Errorf("DBPath = %q, want %q", got.DBPath, want.DBPath)
	}
	if got.AlertThresholdMonths != 3 {
		t.Errorf("AlertThresholdMonths = %d, want 3", got.AlertThresholdMonths)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BUDGETCTL_DB", "/tmp/override.db")
	t.Setenv("BUDGETCTL_ALERT_MONTHS", "12")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Errorf("DBPath = %q, want env override", cfg.DBPath)
	}
	if cfg.AlertThresholdMonths != 12 {
		t.Errorf("AlertThresholdMonths = %d, want 12", cfg.AlertThresholdMonths)
	}
}

func TestEnvOverrideIgnoresGarbage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BUDGETCTL_ALERT_MONTHS", "not-a-number")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AlertThresholdMonths != 6 {
		t.Errorf("AlertThresholdMonths = %d, want default 6", cfg.AlertThresholdMonths)
	}
}

func TestLoadCorruptConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on corrupt config")
	}
}
