package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect captures the few places Postgres and SQLite disagree
type Dialect struct {
	Name string
	// Driver is the database/sql driver name registered by the imported driver package
	Driver string
	// seqColumn is the auto-incrementing surrogate key used for insertion order
	seqColumn string
	// numbered rewrites '?' placeholders to $N
	numbered bool
}

var (
	Postgres = Dialect{
		Name:      "postgres",
		Driver:    "postgres",
		seqColumn: "seq BIGSERIAL PRIMARY KEY",
		numbered:  true,
	}
	SQLite = Dialect{
		Name:      "sqlite",
		Driver:    "sqlite",
		seqColumn: "seq INTEGER PRIMARY KEY AUTOINCREMENT",
	}
)

// DialectByName resolves "postgres" or "sqlite"
func DialectByName(name string) (Dialect, error) {
	switch name {
	case Postgres.Name, "postgresql", "pg":
		return Postgres, nil
	case SQLite.Name, "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql dialect: %q", name)
	}
}

func (d Dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS players (
			player_id TEXT PRIMARY KEY,
			position INTEGER NOT NULL DEFAULT 0
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS teams (
			%s,
			owner_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`, d.seqColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS roster_players (
			%s,
			player_id TEXT NOT NULL UNIQUE,
			owner_id TEXT NOT NULL,
			added_at BIGINT NOT NULL
		)`, d.seqColumn),
		`CREATE INDEX IF NOT EXISTS roster_players_owner_idx ON roster_players (owner_id)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS trades (
			%s,
			id TEXT NOT NULL UNIQUE,
			proposer_id TEXT NOT NULL,
			counterparty_id TEXT NOT NULL,
			offered_player TEXT NOT NULL,
			requested_player TEXT NOT NULL,
			correlation_key TEXT UNIQUE,
			status TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`, d.seqColumn),
	}
}

// Migrate creates the tables if they do not exist yet
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	for _, stmt := range d.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
