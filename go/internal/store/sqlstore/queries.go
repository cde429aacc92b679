package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/sqlutil"
	"github.com/mcdev12/rosterbot/go/internal/store"
)

// queries binds the record operations to one *sql.Tx
type queries struct {
	tx       *sql.Tx
	dialect  Dialect
	writable bool
}

var _ store.Tx = (*queries)(nil)

func (q *queries) bind(query string) string {
	if q.dialect.numbered {
		return sqlutil.Rebind(query)
	}
	return query
}

func (q *queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !q.writable {
		return nil, store.ErrReadOnly
	}
	res, err := q.tx.ExecContext(ctx, q.bind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", store.ErrConflict, err)
		}
		return nil, err
	}
	return res, nil
}

func (q *queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.tx.QueryContext(ctx, q.bind(query), args...)
}

func (q *queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.tx.QueryRowContext(ctx, q.bind(query), args...)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (q *queries) teamExists(ctx context.Context, owner models.OwnerID) error {
	var one int
	err := q.queryRow(ctx, `SELECT 1 FROM teams WHERE owner_id = ?`, string(owner)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func (q *queries) GetTeam(ctx context.Context, owner models.OwnerID) (*models.Team, error) {
	var (
		name      string
		createdAt int64
	)
	err := q.queryRow(ctx, `SELECT name, created_at FROM teams WHERE owner_id = ?`, string(owner)).Scan(&name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	rows, err := q.query(ctx, `SELECT player_id FROM roster_players WHERE owner_id = ? ORDER BY seq`, string(owner))
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	defer rows.Close()

	team := &models.Team{
		OwnerID:   owner,
		Name:      name,
		Players:   []models.PlayerID{},
		CreatedAt: sqlutil.FromUnixNano(createdAt),
	}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan roster player: %w", err)
		}
		team.Players = append(team.Players, models.PlayerID(p))
	}
	return team, rows.Err()
}

func (q *queries) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := q.query(ctx, `SELECT owner_id, name, created_at FROM teams ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	index := make(map[models.OwnerID]int)
	for rows.Next() {
		var (
			owner, name string
			createdAt   int64
		)
		if err := rows.Scan(&owner, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		index[models.OwnerID(owner)] = len(teams)
		teams = append(teams, models.Team{
			OwnerID:   models.OwnerID(owner),
			Name:      name,
			Players:   []models.PlayerID{},
			CreatedAt: sqlutil.FromUnixNano(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	players, err := q.query(ctx, `SELECT owner_id, player_id FROM roster_players ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}
	defer players.Close()
	for players.Next() {
		var owner, player string
		if err := players.Scan(&owner, &player); err != nil {
			return nil, fmt.Errorf("failed to scan roster player: %w", err)
		}
		if i, ok := index[models.OwnerID(owner)]; ok {
			teams[i].Players = append(teams[i].Players, models.PlayerID(player))
		}
	}
	return teams, players.Err()
}

func (q *queries) InsertTeam(ctx context.Context, team models.Team) error {
	if _, err := q.exec(ctx,
		`INSERT INTO teams (owner_id, name, created_at) VALUES (?, ?, ?)`,
		string(team.OwnerID), team.Name, sqlutil.ToUnixNano(team.CreatedAt),
	); err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	for _, p := range team.Players {
		if err := q.insertRosterPlayer(ctx, team.OwnerID, p, team.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (q *queries) DeleteTeam(ctx context.Context, owner models.OwnerID) error {
	res, err := q.exec(ctx, `DELETE FROM teams WHERE owner_id = ?`, string(owner))
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if err := affected(res); err != nil {
		return err
	}
	if _, err := q.exec(ctx, `DELETE FROM roster_players WHERE owner_id = ?`, string(owner)); err != nil {
		return fmt.Errorf("failed to release roster: %w", err)
	}
	return nil
}

func (q *queries) AddRosterPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID, addedAt time.Time) error {
	if !q.writable {
		return store.ErrReadOnly
	}
	if err := q.teamExists(ctx, owner); err != nil {
		return err
	}
	return q.insertRosterPlayer(ctx, owner, player, addedAt)
}

func (q *queries) insertRosterPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID, addedAt time.Time) error {
	if _, err := q.exec(ctx,
		`INSERT INTO roster_players (player_id, owner_id, added_at) VALUES (?, ?, ?)`,
		string(player), string(owner), sqlutil.ToUnixNano(addedAt),
	); err != nil {
		return fmt.Errorf("failed to add roster player: %w", err)
	}
	return nil
}

func (q *queries) RemoveRosterPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID) error {
	if !q.writable {
		return store.ErrReadOnly
	}
	if err := q.teamExists(ctx, owner); err != nil {
		return err
	}
	res, err := q.exec(ctx, `DELETE FROM roster_players WHERE owner_id = ? AND player_id = ?`, string(owner), string(player))
	if err != nil {
		return fmt.Errorf("failed to remove roster player: %w", err)
	}
	return affected(res)
}

func (q *queries) RosteredPlayers(ctx context.Context) (map[models.PlayerID]models.OwnerID, error) {
	rows, err := q.query(ctx, `SELECT player_id, owner_id FROM roster_players`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rostered players: %w", err)
	}
	defer rows.Close()

	out := make(map[models.PlayerID]models.OwnerID)
	for rows.Next() {
		var player, owner string
		if err := rows.Scan(&player, &owner); err != nil {
			return nil, fmt.Errorf("failed to scan rostered player: %w", err)
		}
		out[models.PlayerID(player)] = models.OwnerID(owner)
	}
	return out, rows.Err()
}

const tradeColumns = `id, proposer_id, counterparty_id, offered_player, requested_player, correlation_key, status, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (*models.Trade, error) {
	var (
		id, proposer, counterparty string
		offered, requested, status string
		key                        sql.NullString
		createdAt                  int64
	)
	if err := row.Scan(&id, &proposer, &counterparty, &offered, &requested, &key, &status, &createdAt); err != nil {
		return nil, err
	}
	tradeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid trade id %q: %w", id, err)
	}
	return &models.Trade{
		ID:             tradeID,
		ProposerID:     models.OwnerID(proposer),
		CounterpartyID: models.OwnerID(counterparty),
		Offered:        models.PlayerID(offered),
		Requested:      models.PlayerID(requested),
		CorrelationKey: sqlutil.FromSqlStringPtr(key),
		Status:         models.TradeStatus(status),
		CreatedAt:      sqlutil.FromUnixNano(createdAt),
	}, nil
}

func (q *queries) InsertTrade(ctx context.Context, trade models.Trade) error {
	if _, err := q.exec(ctx,
		`INSERT INTO trades (`+tradeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID.String(),
		string(trade.ProposerID),
		string(trade.CounterpartyID),
		string(trade.Offered),
		string(trade.Requested),
		sqlutil.ToSqlString(trade.CorrelationKey),
		string(trade.Status),
		sqlutil.ToUnixNano(trade.CreatedAt),
	); err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

func (q *queries) getTrade(ctx context.Context, where string, arg any) (*models.Trade, error) {
	trade, err := scanTrade(q.queryRow(ctx, `SELECT `+tradeColumns+` FROM trades WHERE `+where+` = ?`, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return trade, nil
}

func (q *queries) GetTrade(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	return q.getTrade(ctx, "id", id.String())
}

func (q *queries) GetTradeByCorrelationKey(ctx context.Context, key string) (*models.Trade, error) {
	return q.getTrade(ctx, "correlation_key", key)
}

func (q *queries) ListTrades(ctx context.Context) ([]models.Trade, error) {
	rows, err := q.query(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, *trade)
	}
	return trades, rows.Err()
}

func (q *queries) SetTradeCorrelationKey(ctx context.Context, id uuid.UUID, key string) error {
	res, err := q.exec(ctx, `UPDATE trades SET correlation_key = ? WHERE id = ?`, key, id.String())
	if err != nil {
		return fmt.Errorf("failed to set correlation key: %w", err)
	}
	return affected(res)
}

func (q *queries) DeleteTrade(ctx context.Context, id uuid.UUID) error {
	res, err := q.exec(ctx, `DELETE FROM trades WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return affected(res)
}
