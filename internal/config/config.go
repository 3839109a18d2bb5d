package config

import (
	"fmt"
	"os"

	"EchoSentinel/internal/model"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		// LocationsPath points at the JSON export of location records.
		// Empty selects the synthetic mock network.
		LocationsPath string `yaml:"locations_path"`
		MockChains    int    `yaml:"mock_chains"`
		MockPerChain  int    `yaml:"mock_per_chain"`
	} `yaml:"data"`
	Propagation model.PropagationConfig `yaml:"propagation"`
	Schedule struct {
		DailyCron   string `yaml:"daily_cron"`
		WeeklyCron  string `yaml:"weekly_cron"`
		MonthlyCron string `yaml:"monthly_cron"`
	} `yaml:"schedule"`
	Signals struct {
		// Brands to sweep in the weekly signal task; empty sweeps the
		// whole network only.
		Brands []string `yaml:"brands"`
		Trials int      `yaml:"trials"`
	} `yaml:"signals"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Webhook struct {
		URL string `yaml:"url"`
	} `yaml:"webhook"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LOCATIONS_PATH"); v != "" {
		cfg.Data.LocationsPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Webhook.URL = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("CRON_MONTHLY"); v != "" {
		cfg.Schedule.MonthlyCron = v
	}

	// Defaults
	def := model.DefaultPropagationConfig()
	if cfg.Propagation.SelfWeight == 0 {
		cfg.Propagation.SelfWeight = def.SelfWeight
	}
	if cfg.Propagation.GeoMaxWeight == 0 {
		cfg.Propagation.GeoMaxWeight = def.GeoMaxWeight
	}
	if cfg.Propagation.GeoRadiusKm == 0 {
		cfg.Propagation.GeoRadiusKm = def.GeoRadiusKm
	}
	if cfg.Propagation.BrandWeight == 0 {
		cfg.Propagation.BrandWeight = def.BrandWeight
	}
	if cfg.Propagation.CityWeight == 0 {
		cfg.Propagation.CityWeight = def.CityWeight
	}
	if cfg.Propagation.CategoryWeight == 0 {
		cfg.Propagation.CategoryWeight = def.CategoryWeight
	}
	if cfg.Propagation.DefaultSteps == 0 {
		cfg.Propagation.DefaultSteps = def.DefaultSteps
	}
	if cfg.Propagation.DefaultPerturbation == 0 {
		cfg.Propagation.DefaultPerturbation = def.DefaultPerturbation
	}
	if cfg.Propagation.DefaultTrials == 0 {
		cfg.Propagation.DefaultTrials = def.DefaultTrials
	}
	if cfg.Propagation.LowThreshold == 0 {
		cfg.Propagation.LowThreshold = def.LowThreshold
	}
	if cfg.Propagation.HighThreshold == 0 {
		cfg.Propagation.HighThreshold = def.HighThreshold
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 7 * * *"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 8 * * 1"
	}
	if cfg.Schedule.MonthlyCron == "" {
		cfg.Schedule.MonthlyCron = "0 0 9 1 * *"
	}
	if cfg.Signals.Trials == 0 {
		cfg.Signals.Trials = cfg.Propagation.DefaultTrials
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/echo_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	p := c.Propagation
	if p.SelfWeight < 0 {
		return fmt.Errorf("propagation.self_weight must be non-negative")
	}
	if p.GeoRadiusKm <= 0 {
		return fmt.Errorf("propagation.geo_radius_km must be positive")
	}
	if p.LowThreshold >= p.HighThreshold {
		return fmt.Errorf("propagation.low_threshold must be below high_threshold")
	}
	if p.DefaultSteps <= 0 {
		return fmt.Errorf("propagation.default_steps must be positive")
	}
	if p.DefaultTrials <= 0 {
		return fmt.Errorf("propagation.default_trials must be positive")
	}
	return nil
}
