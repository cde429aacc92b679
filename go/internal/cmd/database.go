package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mcdev12/rosterbot/go/internal/dbconfig"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/mcdev12/rosterbot/go/internal/store/memory"
	"github.com/mcdev12/rosterbot/go/internal/store/sqlstore"
	"github.com/mcdev12/rosterbot/go/internal/universe"
	"github.com/rs/zerolog/log"
)

// setupStore opens the store named by DB_DRIVER. The *sql.DB is nil for the memory driver.
func setupStore(ctx context.Context, cfg dbconfig.Config) (store.Store, *sql.DB, error) {
	switch cfg.Driver {
	case dbconfig.DriverPostgres:
		s, err := sqlstore.OpenPostgres(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Str("database", cfg.Database).Msg("Connected to postgres")
		return s, s.DB(), nil
	case dbconfig.DriverSQLite:
		s, err := sqlstore.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("Opened sqlite database")
		return s, s.DB(), nil
	default:
		if cfg.SnapshotPath == "" {
			log.Info().Msg("Using in-memory store")
			return memory.New(), nil, nil
		}
		s, err := memory.Open(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("snapshot", cfg.SnapshotPath).Msg("Using in-memory store with snapshot")
		return s, nil, nil
	}
}

func loadUniverse(ctx context.Context, cfg *Config, db *sql.DB) (*universe.Universe, error) {
	var (
		u   *universe.Universe
		err error
	)
	switch cfg.Universe.Source {
	case UniverseFromDB:
		if db == nil {
			return nil, fmt.Errorf("universe source %q needs a sql driver", UniverseFromDB)
		}
		u, err = universe.LoadDB(ctx, db)
	default:
		u, err = universe.LoadFile(cfg.Universe.File)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Int("players", u.Len()).Str("source", cfg.Universe.Source).Msg("Loaded player universe")
	return u, nil
}
