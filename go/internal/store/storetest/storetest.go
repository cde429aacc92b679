// Package storetest holds the behaviour every store.Store implementation must share
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty store for one subtest
type Factory func(t *testing.T) store.Store

var errRollback = errors.New("rollback")

// Run exercises s against the store contract
func Run(t *testing.T, newStore Factory) {
	t.Run("TeamLifecycle", func(t *testing.T) { testTeamLifecycle(t, newStore(t)) })
	t.Run("RosterPartition", func(t *testing.T) { testRosterPartition(t, newStore(t)) })
	t.Run("RollbackOnError", func(t *testing.T) { testRollback(t, newStore(t)) })
	t.Run("ViewIsReadOnly", func(t *testing.T) { testViewReadOnly(t, newStore(t)) })
	t.Run("TradeLifecycle", func(t *testing.T) { testTradeLifecycle(t, newStore(t)) })
	t.Run("TradeOrder", func(t *testing.T) { testTradeOrder(t, newStore(t)) })
}

func now() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func update(t *testing.T, s store.Store, fn func(ctx context.Context, tx store.Tx) error) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Update(ctx, func(tx store.Tx) error { return fn(ctx, tx) }))
}

func view(t *testing.T, s store.Store, fn func(ctx context.Context, tx store.Tx) error) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.View(ctx, func(tx store.Tx) error { return fn(ctx, tx) }))
}

func testTeamLifecycle(t *testing.T, s store.Store) {
	update(t, s, func(ctx context.Context, tx store.Tx) error {
		if err := tx.InsertTeam(ctx, models.Team{OwnerID: "1", Name: "Foxes", CreatedAt: now()}); err != nil {
			return err
		}
		return tx.InsertTeam(ctx, models.Team{OwnerID: "2", Name: "Bears", CreatedAt: now()})
	})

	err := s.Update(context.Background(), func(tx store.Tx) error {
		return tx.InsertTeam(context.Background(), models.Team{OwnerID: "1", Name: "Again", CreatedAt: now()})
	})
	require.ErrorIs(t, err, store.ErrConflict)

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		team, err := tx.GetTeam(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Foxes", team.Name)
		assert.Empty(t, team.Players)
		assert.True(t, team.CreatedAt.Equal(now()))

		teams, err := tx.ListTeams(ctx)
		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Equal(t, models.OwnerID("1"), teams[0].OwnerID)
		assert.Equal(t, models.OwnerID("2"), teams[1].OwnerID)

		_, err = tx.GetTeam(ctx, "3")
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	})

	update(t, s, func(ctx context.Context, tx store.Tx) error {
		return tx.DeleteTeam(ctx, "1")
	})
	err = s.Update(context.Background(), func(tx store.Tx) error {
		return tx.DeleteTeam(context.Background(), "1")
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testRosterPartition(t *testing.T, s store.Store) {
	update(t, s, func(ctx context.Context, tx store.Tx) error {
		require.NoError(t, tx.InsertTeam(ctx, models.Team{OwnerID: "1", Name: "Foxes", CreatedAt: now()}))
		require.NoError(t, tx.InsertTeam(ctx, models.Team{OwnerID: "2", Name: "Bears", CreatedAt: now()}))
		require.NoError(t, tx.AddRosterPlayer(ctx, "1", "ZIM", now()))
		require.NoError(t, tx.AddRosterPlayer(ctx, "1", "DIB", now().Add(time.Second)))
		return tx.AddRosterPlayer(ctx, "2", "GIR", now())
	})

	err := s.Update(context.Background(), func(tx store.Tx) error {
		return tx.AddRosterPlayer(context.Background(), "2", "ZIM", now())
	})
	require.ErrorIs(t, err, store.ErrConflict)

	err = s.Update(context.Background(), func(tx store.Tx) error {
		return tx.AddRosterPlayer(context.Background(), "9", "GAZ", now())
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Update(context.Background(), func(tx store.Tx) error {
		return tx.RemoveRosterPlayer(context.Background(), "2", "ZIM")
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		team, err := tx.GetTeam(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, []models.PlayerID{"ZIM", "DIB"}, team.Players)

		rostered, err := tx.RosteredPlayers(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[models.PlayerID]models.OwnerID{"ZIM": "1", "DIB": "1", "GIR": "2"}, rostered)
		return nil
	})

	update(t, s, func(ctx context.Context, tx store.Tx) error {
		require.NoError(t, tx.RemoveRosterPlayer(ctx, "1", "ZIM"))
		return tx.DeleteTeam(ctx, "2")
	})

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		rostered, err := tx.RosteredPlayers(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[models.PlayerID]models.OwnerID{"DIB": "1"}, rostered)
		return nil
	})

	// GIR was freed by the delete and can be signed again
	update(t, s, func(ctx context.Context, tx store.Tx) error {
		return tx.AddRosterPlayer(ctx, "1", "GIR", now())
	})
}

func testRollback(t *testing.T, s store.Store) {
	update(t, s, func(ctx context.Context, tx store.Tx) error {
		return tx.InsertTeam(ctx, models.Team{OwnerID: "1", Name: "Foxes", CreatedAt: now()})
	})

	err := s.Update(context.Background(), func(tx store.Tx) error {
		ctx := context.Background()
		require.NoError(t, tx.AddRosterPlayer(ctx, "1", "ZIM", now()))
		require.NoError(t, tx.InsertTeam(ctx, models.Team{OwnerID: "2", Name: "Bears", CreatedAt: now()}))
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		team, err := tx.GetTeam(ctx, "1")
		require.NoError(t, err)
		assert.Empty(t, team.Players)

		_, err = tx.GetTeam(ctx, "2")
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	})
}

func testViewReadOnly(t *testing.T, s store.Store) {
	err := s.View(context.Background(), func(tx store.Tx) error {
		return tx.InsertTeam(context.Background(), models.Team{OwnerID: "1", Name: "Foxes", CreatedAt: now()})
	})
	require.Error(t, err)

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		teams, err := tx.ListTeams(ctx)
		require.NoError(t, err)
		assert.Empty(t, teams)
		return nil
	})
}

func newTrade(proposer, counterparty models.OwnerID, offered, requested models.PlayerID) models.Trade {
	return models.Trade{
		ID:             uuid.New(),
		ProposerID:     proposer,
		CounterpartyID: counterparty,
		Offered:        offered,
		Requested:      requested,
		Status:         models.TradeStatusPending,
		CreatedAt:      now(),
	}
}

func testTradeLifecycle(t *testing.T, s store.Store) {
	trade := newTrade("1", "2", "ZIM", "GIR")
	update(t, s, func(ctx context.Context, tx store.Tx) error {
		return tx.InsertTrade(ctx, trade)
	})

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		got, err := tx.GetTrade(ctx, trade.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.ProposerID, got.ProposerID)
		assert.Equal(t, trade.Requested, got.Requested)
		assert.Nil(t, got.CorrelationKey)
		assert.Equal(t, models.TradeStatusPending, got.Status)

		_, err = tx.GetTradeByCorrelationKey(ctx, "msg-1")
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	})

	update(t, s, func(ctx context.Context, tx store.Tx) error {
		return tx.SetTradeCorrelationKey(ctx, trade.ID, "msg-1")
	})

	other := newTrade("2", "1", "GIR", "ZIM")
	update(t, s, func(ctx context.Context, tx store.Tx) error {
		return tx.InsertTrade(ctx, other)
	})
	err := s.Update(context.Background(), func(tx store.Tx) error {
		return tx.SetTradeCorrelationKey(context.Background(), other.ID, "msg-1")
	})
	require.ErrorIs(t, err, store.ErrConflict)

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		got, err := tx.GetTradeByCorrelationKey(ctx, "msg-1")
		require.NoError(t, err)
		assert.Equal(t, trade.ID, got.ID)
		assert.Equal(t, "msg-1", got.Key())
		return nil
	})

	update(t, s, func(ctx context.Context, tx store.Tx) error {
		return tx.DeleteTrade(ctx, trade.ID)
	})
	err = s.Update(context.Background(), func(tx store.Tx) error {
		return tx.DeleteTrade(context.Background(), trade.ID)
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.GetTradeByCorrelationKey(ctx, "msg-1")
		assert.ErrorIs(t, err, store.ErrNotFound)

		trades, err := tx.ListTrades(ctx)
		require.NoError(t, err)
		require.Len(t, trades, 1)
		assert.Equal(t, other.ID, trades[0].ID)
		return nil
	})
}

func testTradeOrder(t *testing.T, s store.Store) {
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		trade := newTrade("1", "2", "ZIM", "GIR")
		ids = append(ids, trade.ID)
		update(t, s, func(ctx context.Context, tx store.Tx) error {
			return tx.InsertTrade(ctx, trade)
		})
	}

	view(t, s, func(ctx context.Context, tx store.Tx) error {
		trades, err := tx.ListTrades(ctx)
		require.NoError(t, err)
		require.Len(t, trades, len(ids))
		for i, trade := range trades {
			assert.Equal(t, ids[i], trade.ID, "trades come back in creation order")
		}
		return nil
	})
}
