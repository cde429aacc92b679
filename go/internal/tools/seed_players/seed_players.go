package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mcdev12/rosterbot/go/internal/dbconfig"
	"github.com/mcdev12/rosterbot/go/internal/universe"
)

const createPlayers = `
CREATE TABLE IF NOT EXISTS players (
  player_id TEXT PRIMARY KEY,
  position INTEGER NOT NULL DEFAULT 0
)`

const upsertPlayer = `
INSERT INTO players (player_id, position) VALUES ($1, $2)
ON CONFLICT (player_id) DO UPDATE SET position = EXCLUDED.position
WHERE players.position <> EXCLUDED.position`

func main() {
	path := flag.String("file", "players.txt", "universe file (.txt or .yaml)")
	flag.Parse()

	_ = godotenv.Load()
	ctx := context.Background()

	// 1) Load universe
	u, err := universe.LoadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load universe: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect to DB
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "db config: %v\n", err)
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, createPlayers); err != nil {
		fmt.Fprintf(os.Stderr, "create players table: %v\n", err)
		os.Exit(1)
	}

	// 3) Seed players in one batch
	players := u.Players()
	batch := &pgx.Batch{}
	for i, p := range players {
		batch.Queue(upsertPlayer, p.String(), i)
	}
	results := pool.SendBatch(ctx, batch)
	written, errs := 0, 0
	for _, p := range players {
		tag, err := results.Exec()
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed %s: %v\n", p, err)
			errs++
			continue
		}
		written += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close batch: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf(
		"Players seed: total=%d written=%d unchanged=%d errors=%d\n",
		len(players), written, len(players)-written-errs, errs,
	)
	if errs > 0 {
		os.Exit(1)
	}
}
