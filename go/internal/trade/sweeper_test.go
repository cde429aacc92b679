package trade

import (
	"context"
	"testing"
	"time"

	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForOutcome(t *testing.T, r *recorder, outcome models.TradeOutcome) models.TradeEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e := <-r.ch:
			if e.Outcome == outcome {
				return e
			}
		case <-timeout:
			t.Fatalf("no %s event", outcome)
		}
	}
}

func TestSweeperExpiresOnTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	l := newLeague(t)
	tr := l.propose(t, "ZIM", "GIR")

	sweeper := NewSweeper(l.trades, l.clock, 30*time.Second)
	require.NoError(t, sweeper.Start(ctx))
	defer func() { _ = sweeper.Stop() }()

	// the ticker exists once the loop is running
	require.NoError(t, l.clock.BlockUntilContext(ctx, 1))

	_, err := l.roster.DropPlayer(ctx, "1", "ZIM")
	require.NoError(t, err)
	l.clock.Advance(30 * time.Second)

	event := waitForOutcome(t, l.events, models.TradeOutcomeExpired)
	assert.Equal(t, tr.ID, event.Trade.ID)

	pending, err := l.trades.ListTrades(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSweeperSweepsOnStart(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	tr := l.propose(t, "ZIM", "GIR")
	_, err := l.teams.DeleteFantasyTeam(ctx, "1")
	require.NoError(t, err)

	sweeper := NewSweeper(l.trades, l.clock, time.Hour)
	require.NoError(t, sweeper.Start(ctx))

	event := waitForOutcome(t, l.events, models.TradeOutcomeExpired)
	assert.Equal(t, tr.ID, event.Trade.ID)
	require.NoError(t, sweeper.Stop())
}

func TestSweeperStartStop(t *testing.T) {
	l := newLeague(t)
	sweeper := NewSweeper(l.trades, l.clock, 0)
	assert.Equal(t, DefaultSweepInterval, sweeper.interval)

	require.NoError(t, sweeper.Start(context.Background()))
	assert.Error(t, sweeper.Start(context.Background()))
	require.NoError(t, sweeper.Stop())
	assert.Error(t, sweeper.Stop())

	// restartable after a stop
	require.NoError(t, sweeper.Start(context.Background()))
	require.NoError(t, sweeper.Stop())
}
