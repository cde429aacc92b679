package dbconfig

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted in DB_DRIVER
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds storage settings read from DB_* environment variables.
type Config struct {
	Driver string `env:"DB_DRIVER" envDefault:"memory"`

	// Postgres
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Database string `env:"DB_NAME" envDefault:"rosterbot"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// SQLitePath is the database file used by the sqlite driver
	SQLitePath string `env:"DB_SQLITE_PATH" envDefault:"rosterbot.db"`
	// SnapshotPath makes the memory driver persist a JSON snapshot; empty keeps it in memory only
	SnapshotPath string `env:"DB_SNAPSHOT_PATH"`
}

// NewConfigFromEnv reads DB_* environment variables (with defaults).
func NewConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse db config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown drivers
func (c Config) Validate() error {
	switch c.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
}

// DSN returns the Postgres connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}
