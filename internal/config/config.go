package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// DatasetConfig points at a JSON dataset loaded at startup when no database
// is configured.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

type ScoringConfig struct {
	Weights       ScoringWeights      `yaml:"weights"`
	ResumeScaling ResumeScalingConfig `yaml:"resume_scaling"`
}

type ScoringWeights struct {
	Efficiency       float64 `yaml:"efficiency"`
	Shooting         float64 `yaml:"shooting"`
	Possession       float64 `yaml:"possession"`
	MarginStabilizer float64 `yaml:"margin_stabilizer"`
}

// ResumeScalingConfig keys multipliers by résumé tier label, e.g. "Elite".
type ResumeScalingConfig struct {
	Enabled     bool               `yaml:"enabled"`
	Multipliers map[string]float64 `yaml:"multipliers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				Efficiency:       0.45,
				Shooting:         0.35,
				Possession:       0.20,
				MarginStabilizer: 0.10,
			},
			ResumeScaling: ResumeScalingConfig{
				Enabled: true,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MATCHUP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("MATCHUP_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("MATCHUP_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("MATCHUP_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("MATCHUP_NATS_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("MATCHUP_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("MATCHUP_RESUME_SCALING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scoring.ResumeScaling.Enabled = b
		}
	}
	if v := os.Getenv("MATCHUP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MATCHUP_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
