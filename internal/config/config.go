package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "moviedq.yaml"

// DateLayout is the calendar-date layout used for archive cutoffs.
const DateLayout = "2006-01-02"

// Config represents the flat moviedq configuration.
type Config struct {
	Database              string `yaml:"database"`
	ArchiveCutoff         string `yaml:"archive_cutoff"`       // YYYY-MM-DD; records released before it are archived
	AuditRetentionDays    int    `yaml:"audit_retention_days"` // audit entries older than this are pruned
	BackupDir             string `yaml:"backup_dir"`
	OutputDir             string `yaml:"output_dir"` // JSON snapshots and text reports
	RecentWindowYears     int    `yaml:"recent_window_years"`
	RetentionHorizonYears int    `yaml:"retention_horizon_years"`
	MinReliableVotes      int64  `yaml:"min_reliable_votes"`
	LogMode               string `yaml:"log_mode"`               // "dev" or "prod"
	MetricsFile           string `yaml:"metrics_file,omitempty"` // Prometheus textfile; empty disables export
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Database:              "moviedq.db",
		ArchiveCutoff:         "1980-01-01",
		AuditRetentionDays:    365,
		BackupDir:             "backups",
		OutputDir:             "reports",
		RecentWindowYears:     10,
		RetentionHorizonYears: 20,
		MinReliableVotes:      10,
		LogMode:               "dev",
	}
}

// LoadConfig reads the YAML config at path. A missing file yields defaults;
// keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes cfg to path as YAML, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("invalid config: database path is empty")
	}
	if _, err := c.ArchiveCutoffTime(); err != nil {
		return err
	}
	if c.AuditRetentionDays <= 0 {
		return fmt.Errorf("invalid config: audit_retention_days must be positive, got %d", c.AuditRetentionDays)
	}
	if c.RecentWindowYears <= 0 {
		return fmt.Errorf("invalid config: recent_window_years must be positive, got %d", c.RecentWindowYears)
	}
	if c.RetentionHorizonYears <= 0 {
		return fmt.Errorf("invalid config: retention_horizon_years must be positive, got %d", c.RetentionHorizonYears)
	}
	if c.MinReliableVotes < 0 {
		return fmt.Errorf("invalid config: min_reliable_votes must not be negative, got %d", c.MinReliableVotes)
	}
	return nil
}

// ArchiveCutoffTime parses ArchiveCutoff.
func (c *Config) ArchiveCutoffTime() (time.Time, error) {
	t, err := time.Parse(DateLayout, c.ArchiveCutoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid config: archive_cutoff %q: %w", c.ArchiveCutoff, err)
	}
	return t, nil
}

// AuditRetention returns the audit retention window.
func (c *Config) AuditRetention() time.Duration {
	return time.Duration(c.AuditRetentionDays) * 24 * time.Hour
}
