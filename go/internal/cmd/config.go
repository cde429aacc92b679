package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mcdev12/rosterbot/go/internal/gateway"
	"github.com/mcdev12/rosterbot/go/internal/notify"
	"github.com/mcdev12/rosterbot/go/internal/trade"
	"gopkg.in/yaml.v3"
)

// Universe sources
const (
	UniverseFromFile = "file"
	UniverseFromDB   = "db"
)

// ServerConfig is read from the environment
type ServerConfig struct {
	Port         string `env:"PORT" envDefault:"8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LeagueConfig string `env:"LEAGUE_CONFIG" envDefault:"league.yaml"`
}

// Config is the league file
type Config struct {
	Universe struct {
		Source string `yaml:"source"`
		File   string `yaml:"file"`
	} `yaml:"universe"`

	SweepInterval time.Duration `yaml:"sweep_interval"`

	Notify struct {
		NATS struct {
			Enabled                bool `yaml:"enabled"`
			notify.JetStreamConfig `yaml:",inline"`
		} `yaml:"nats"`
		WebSocket struct {
			Enabled                  bool `yaml:"enabled"`
			gateway.ConnectionConfig `yaml:",inline"`
		} `yaml:"websocket"`
	} `yaml:"notify"`
}

func loadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to parse server config: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Universe.Source = UniverseFromFile
	cfg.Universe.File = "players.txt"
	cfg.SweepInterval = trade.DefaultSweepInterval
	cfg.Notify.NATS.JetStreamConfig = notify.DefaultJetStreamConfig()
	cfg.Notify.WebSocket.Enabled = true
	cfg.Notify.WebSocket.ConnectionConfig = gateway.DefaultConnectionConfig()
	return &cfg
}

// loadConfig overlays the league file onto defaults
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch config.Universe.Source {
	case UniverseFromFile:
		if config.Universe.File == "" {
			return nil, fmt.Errorf("universe.file is required when source is %q", UniverseFromFile)
		}
	case UniverseFromDB:
	default:
		return nil, fmt.Errorf("unknown universe source %q", config.Universe.Source)
	}
	if config.SweepInterval <= 0 {
		return nil, fmt.Errorf("sweep_interval must be positive")
	}
	return config, nil
}
