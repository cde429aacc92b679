package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterbot/go/internal/locks"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/mcdev12/rosterbot/go/internal/universe"
	"github.com/rs/zerolog/log"
)

// App handles roster business logic: signing and releasing players and the
// free-agent view derived from the rosters
type App struct {
	store    store.Store
	locks    *locks.Manager
	universe *universe.Universe
	clock    clockwork.Clock
}

// NewApp creates a new roster App
func NewApp(st store.Store, lm *locks.Manager, u *universe.Universe, clock clockwork.Clock) *App {
	return &App{
		store:    st,
		locks:    lm,
		universe: u,
		clock:    clock,
	}
}

// AddPlayer signs a free agent to the owner's team. A rostered player yields a
// *models.NotFreeAgentError naming the team that holds it.
func (a *App) AddPlayer(ctx context.Context, owner models.OwnerID, raw models.PlayerID) (*models.Team, error) {
	player := models.NormalizePlayerID(string(raw))
	if player == "" {
		return nil, fmt.Errorf("%w: player ID is required", models.ErrInvalidArgument)
	}

	// the player key serializes owners racing for the same free agent
	unlock := a.locks.Lock(locks.OwnerKey(owner), locks.PlayerKey(player))
	defer unlock()

	var team *models.Team
	err := a.store.Update(ctx, func(tx store.Tx) error {
		var err error
		if team, err = getTeam(ctx, tx, owner); err != nil {
			return err
		}
		if !a.universe.Contains(player) {
			return fmt.Errorf("%w: %s", models.ErrUnknownPlayer, player)
		}
		if team.HasPlayer(player) {
			return &models.NotFreeAgentError{Player: player, Owner: owner}
		}
		rostered, err := tx.RosteredPlayers(ctx)
		if err != nil {
			return fmt.Errorf("failed to read rosters: %w", err)
		}
		if holder, ok := rostered[player]; ok {
			return &models.NotFreeAgentError{Player: player, Owner: holder}
		}
		if err := tx.AddRosterPlayer(ctx, owner, player, a.clock.Now().UTC()); err != nil {
			return fmt.Errorf("failed to add player: %w", err)
		}
		team.Players = append(team.Players, player)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("owner_id", owner.String()).
		Str("player_id", player.String()).
		Msg("player added to roster")
	return team, nil
}

// DropPlayer releases a player from the owner's team back to free agency
func (a *App) DropPlayer(ctx context.Context, owner models.OwnerID, raw models.PlayerID) (*models.Team, error) {
	player := models.NormalizePlayerID(string(raw))

	unlock := a.locks.Lock(locks.OwnerKey(owner), locks.PlayerKey(player))
	defer unlock()

	var team *models.Team
	err := a.store.Update(ctx, func(tx store.Tx) error {
		var err error
		if team, err = getTeam(ctx, tx, owner); err != nil {
			return err
		}
		if !team.HasPlayer(player) {
			return fmt.Errorf("%w: %s", models.ErrNotOnTeam, player)
		}
		if err := tx.RemoveRosterPlayer(ctx, owner, player); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.ErrNotOnTeam
			}
			return fmt.Errorf("failed to drop player: %w", err)
		}
		team.Players = without(team.Players, player)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("owner_id", owner.String()).
		Str("player_id", player.String()).
		Msg("player dropped from roster")
	return team, nil
}

// GetRosterPlayers returns the owner's players in the order they joined
func (a *App) GetRosterPlayers(ctx context.Context, owner models.OwnerID) ([]models.PlayerID, error) {
	var players []models.PlayerID
	err := a.store.View(ctx, func(tx store.Tx) error {
		team, err := getTeam(ctx, tx, owner)
		if err != nil {
			return err
		}
		players = team.Players
		return nil
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

// ListFreeAgents returns every universe player not on a roster, in universe
// order. It is computed from a single read transaction so it never mixes two
// roster states.
func (a *App) ListFreeAgents(ctx context.Context) ([]models.PlayerID, error) {
	var free []models.PlayerID
	err := a.store.View(ctx, func(tx store.Tx) error {
		rostered, err := tx.RosteredPlayers(ctx)
		if err != nil {
			return fmt.Errorf("failed to read rosters: %w", err)
		}
		free = a.universe.Without(rostered)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return free, nil
}

// CheckPartition verifies that every rostered player is a universe player held
// by exactly one team and that the roster index agrees with the teams. It
// returns nil when the league is consistent.
func (a *App) CheckPartition(ctx context.Context) error {
	return a.store.View(ctx, func(tx store.Tx) error {
		teams, err := tx.ListTeams(ctx)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}
		rostered, err := tx.RosteredPlayers(ctx)
		if err != nil {
			return fmt.Errorf("failed to read rosters: %w", err)
		}
		return checkPartition(a.universe, teams, rostered)
	})
}

// ErrPartition is matched by every CheckPartition failure
var ErrPartition = errors.New("roster partition violated")

func checkPartition(u *universe.Universe, teams []models.Team, rostered map[models.PlayerID]models.OwnerID) error {
	var errs []error
	holders := make(map[models.PlayerID]models.OwnerID)
	for _, team := range teams {
		for _, p := range team.Players {
			if !u.Contains(p) {
				errs = append(errs, fmt.Errorf("%w: %s on team %s is not in the universe", ErrPartition, p, team.OwnerID))
			}
			if other, dup := holders[p]; dup {
				errs = append(errs, fmt.Errorf("%w: %s is on teams %s and %s", ErrPartition, p, other, team.OwnerID))
				continue
			}
			holders[p] = team.OwnerID
			if rostered[p] != team.OwnerID {
				errs = append(errs, fmt.Errorf("%w: %s indexed under %q, held by %s", ErrPartition, p, rostered[p], team.OwnerID))
			}
		}
	}
	for p, owner := range rostered {
		if _, ok := holders[p]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s indexed under %s but on no roster", ErrPartition, p, owner))
		}
	}
	return errors.Join(errs...)
}

func getTeam(ctx context.Context, tx store.Tx, owner models.OwnerID) (*models.Team, error) {
	team, err := tx.GetTeam(ctx, owner)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.ErrNoTeam
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func without(players []models.PlayerID, drop models.PlayerID) []models.PlayerID {
	out := make([]models.PlayerID, 0, len(players))
	for _, p := range players {
		if p != drop {
			out = append(out, p)
		}
	}
	return out
}
