package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines batch run configuration.
type Config struct {
	AuditsDir string         `yaml:"audits_dir"`
	Clients   string         `yaml:"clients"`
	Log       LogConfig      `yaml:"log"`
	Pipeline  PipelineConfig `yaml:"pipeline"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// PipelineConfig carries the knobs for one batch invocation.
type PipelineConfig struct {
	// Source selects the contact source: "synthetic", "csv", or "crm".
	Source string `yaml:"source"`
	// Limit is a hard cap on contacts fetched per client; 0 means the
	// source default.
	Limit int `yaml:"limit"`
	// CSVName is the per-client contacts file name under the client's
	// audit directory when Source is "csv".
	CSVName string `yaml:"csv_name"`
	// AutoApprove approves every draft before the send phase.
	AutoApprove bool `yaml:"auto_approve"`
	// SendOverride is the operator-level gate bypass. Never implied by
	// configuration files; only the CLI flag sets it.
	SendOverride bool `yaml:"-"`
	// SimulateReplies runs the deterministic reply simulator after sends.
	SimulateReplies bool `yaml:"simulate_replies"`
	// Seed feeds epsilon-greedy template exploration.
	Seed int64 `yaml:"seed"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		AuditsDir: "audits",
		Clients:   "clients.yaml",
		Log: LogConfig{
			Level: "info",
		},
		Pipeline: PipelineConfig{
			Source:  "synthetic",
			Limit:   1000,
			CSVName: "contacts.csv",
		},
	}

	if path := os.Getenv("ADA_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dir := os.Getenv("ADA_AUDITS_DIR"); dir != "" {
		cfg.AuditsDir = dir
	}
	if clients := os.Getenv("ADA_CLIENTS_PATH"); clients != "" {
		cfg.Clients = clients
	}
	if level := os.Getenv("ADA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
