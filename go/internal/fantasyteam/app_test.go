package fantasyteam

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterbot/go/internal/locks"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/mcdev12/rosterbot/go/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, store.Store) {
	t.Helper()
	st := memory.New()
	return NewApp(st, locks.NewManager(), clockwork.NewFakeClockAt(epoch)), st
}

func TestCreateFantasyTeam(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	team, err := app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{OwnerID: " 1 ", Name: " Foxes "})
	require.NoError(t, err)
	assert.Equal(t, models.OwnerID("1"), team.OwnerID)
	assert.Equal(t, "Foxes", team.Name)
	assert.Empty(t, team.Players)
	assert.True(t, team.CreatedAt.Equal(epoch))

	_, err = app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{OwnerID: "1", Name: "Foxes II"})
	assert.ErrorIs(t, err, models.ErrAlreadyHasTeam)

	got, err := app.GetFantasyTeam(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Foxes", got.Name)
}

func TestCreateFantasyTeamValidation(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	_, err := app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{OwnerID: "", Name: "Foxes"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{OwnerID: "1", Name: "   "})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	teams, err := app.ListFantasyTeams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestConcurrentCreateOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{OwnerID: "1", Name: "Foxes"})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, models.ErrAlreadyHasTeam)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestListFantasyTeamsInCreationOrder(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(t)

	for _, owner := range []models.OwnerID{"3", "1", "2"} {
		_, err := app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{OwnerID: owner, Name: "Team " + owner.String()})
		require.NoError(t, err)
	}

	teams, err := app.ListFantasyTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, models.OwnerID("3"), teams[0].OwnerID)
	assert.Equal(t, models.OwnerID("1"), teams[1].OwnerID)
	assert.Equal(t, models.OwnerID("2"), teams[2].OwnerID)
}

func TestDeleteFantasyTeamFreesPlayers(t *testing.T) {
	ctx := context.Background()
	app, st := newTestApp(t)

	_, err := app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{OwnerID: "1", Name: "Foxes"})
	require.NoError(t, err)
	require.NoError(t, st.Update(ctx, func(tx store.Tx) error {
		if err := tx.AddRosterPlayer(ctx, "1", "ZIM", epoch); err != nil {
			return err
		}
		return tx.AddRosterPlayer(ctx, "1", "GIR", epoch)
	}))

	deleted, err := app.DeleteFantasyTeam(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []models.PlayerID{"ZIM", "GIR"}, deleted.Players)

	require.NoError(t, st.View(ctx, func(tx store.Tx) error {
		rostered, err := tx.RosteredPlayers(ctx)
		require.NoError(t, err)
		assert.Empty(t, rostered)
		return nil
	}))

	_, err = app.GetFantasyTeam(ctx, "1")
	assert.ErrorIs(t, err, models.ErrNoTeam)

	_, err = app.DeleteFantasyTeam(ctx, "1")
	assert.ErrorIs(t, err, models.ErrNoTeam)

	// the owner may start over
	_, err = app.CreateFantasyTeam(ctx, CreateFantasyTeamRequest{OwnerID: "1", Name: "Foxes Reborn"})
	assert.NoError(t, err)
}
