package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Propagation.SelfWeight != 0.7 {
		t.Errorf("expected default self weight 0.7, got %g", cfg.Propagation.SelfWeight)
	}
	if cfg.Propagation.GeoRadiusKm != 50 {
		t.Errorf("expected default geo radius 50, got %g", cfg.Propagation.GeoRadiusKm)
	}
	if cfg.Propagation.DefaultTrials != 500 {
		t.Errorf("expected default trials 500, got %d", cfg.Propagation.DefaultTrials)
	}
	if cfg.Propagation.DefaultPerturbation != -0.5 {
		t.Errorf("expected default perturbation -0.5, got %g", cfg.Propagation.DefaultPerturbation)
	}
	if cfg.Schedule.DailyCron == "" || cfg.Schedule.WeeklyCron == "" {
		t.Error("expected default cron expressions")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	content := `
propagation:
  self_weight: 0.5
  brand_weight: 0.3
database:
  sqlite_path: from_file.db
signals:
  brands: [alpha, beta]
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SQLITE_PATH", "from_env.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Propagation.SelfWeight != 0.5 {
		t.Errorf("file value lost: self weight %g", cfg.Propagation.SelfWeight)
	}
	if cfg.Propagation.BrandWeight != 0.3 {
		t.Errorf("file value lost: brand weight %g", cfg.Propagation.BrandWeight)
	}
	// Unset fields still get defaults.
	if cfg.Propagation.CityWeight != 0.08 {
		t.Errorf("expected default city weight, got %g", cfg.Propagation.CityWeight)
	}
	if cfg.Database.SQLitePath != "from_env.db" {
		t.Errorf("env override lost: %s", cfg.Database.SQLitePath)
	}
	if len(cfg.Signals.Brands) != 2 {
		t.Errorf("expected 2 watched brands, got %d", len(cfg.Signals.Brands))
	}
	if cfg.Signals.Trials != 500 {
		t.Errorf("signal trials should default to propagation trials, got %d", cfg.Signals.Trials)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Propagation.LowThreshold = 4.0
	cfg.Propagation.HighThreshold = 3.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for inverted thresholds")
	}

	cfg.Propagation.LowThreshold = 1.5
	cfg.Propagation.GeoRadiusKm = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero geo radius")
	}
}
