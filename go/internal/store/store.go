// Package store defines the durable record store shared by the roster and
// trade apps. Implementations live in the memory and sqlstore subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterbot/go/internal/models"
)

var (
	// ErrNotFound is returned when the addressed record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would break a uniqueness constraint
	ErrConflict = errors.New("record conflict")
	// ErrReadOnly is returned by write methods called inside View
	ErrReadOnly = errors.New("read-only transaction")
)

// Store runs functions inside transactions. Update commits every write made
// by fn if it returns nil and discards all of them otherwise.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// Tx is the set of record operations available inside a transaction
type Tx interface {
	Teams
	Trades
}

// Teams covers team and roster records
type Teams interface {
	GetTeam(ctx context.Context, owner models.OwnerID) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	InsertTeam(ctx context.Context, team models.Team) error
	DeleteTeam(ctx context.Context, owner models.OwnerID) error
	AddRosterPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID, addedAt time.Time) error
	RemoveRosterPlayer(ctx context.Context, owner models.OwnerID, player models.PlayerID) error
	// RosteredPlayers maps every player on any roster to its owner
	RosteredPlayers(ctx context.Context) (map[models.PlayerID]models.OwnerID, error)
}

// Trades covers pending trade records
type Trades interface {
	InsertTrade(ctx context.Context, trade models.Trade) error
	GetTrade(ctx context.Context, id uuid.UUID) (*models.Trade, error)
	GetTradeByCorrelationKey(ctx context.Context, key string) (*models.Trade, error)
	// ListTrades returns pending trades in creation order
	ListTrades(ctx context.Context) ([]models.Trade, error)
	SetTradeCorrelationKey(ctx context.Context, id uuid.UUID, key string) error
	DeleteTrade(ctx context.Context, id uuid.UUID) error
}
