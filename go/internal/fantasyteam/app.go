package fantasyteam

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterbot/go/internal/locks"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/rs/zerolog/log"
)

// App handles fantasy team business logic
type App struct {
	store store.Store
	locks *locks.Manager
	clock clockwork.Clock
}

// NewApp creates a new fantasy teams App
func NewApp(st store.Store, lm *locks.Manager, clock clockwork.Clock) *App {
	return &App{
		store: st,
		locks: lm,
		clock: clock,
	}
}

// CreateFantasyTeam creates an empty team for an owner that has none
func (a *App) CreateFantasyTeam(ctx context.Context, req CreateFantasyTeamRequest) (*models.Team, error) {
	req.OwnerID = models.OwnerID(strings.TrimSpace(string(req.OwnerID)))
	req.Name = strings.TrimSpace(req.Name)
	if err := a.validateCreateFantasyTeamRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	unlock := a.locks.Lock(locks.OwnerKey(req.OwnerID))
	defer unlock()

	team := models.Team{
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Players:   []models.PlayerID{},
		CreatedAt: a.clock.Now().UTC(),
	}
	err := a.store.Update(ctx, func(tx store.Tx) error {
		if _, err := tx.GetTeam(ctx, req.OwnerID); err == nil {
			return models.ErrAlreadyHasTeam
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := tx.InsertTeam(ctx, team); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return models.ErrAlreadyHasTeam
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("owner_id", team.OwnerID.String()).
		Str("team_name", team.Name).
		Msg("created fantasy team")
	return &team, nil
}

// GetFantasyTeam retrieves the owner's team
func (a *App) GetFantasyTeam(ctx context.Context, owner models.OwnerID) (*models.Team, error) {
	var team *models.Team
	err := a.store.View(ctx, func(tx store.Tx) error {
		var err error
		team, err = getTeam(ctx, tx, owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// ListFantasyTeams returns every team in creation order
func (a *App) ListFantasyTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := a.store.View(ctx, func(tx store.Tx) error {
		var err error
		teams, err = tx.ListTeams(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list fantasy teams: %w", err)
	}
	return teams, nil
}

// DeleteFantasyTeam removes the owner's team. Its players return to the
// free-agent pool in the same transaction. The deleted team is returned so the
// caller can report which players were freed.
func (a *App) DeleteFantasyTeam(ctx context.Context, owner models.OwnerID) (*models.Team, error) {
	unlock := a.locks.Lock(locks.OwnerKey(owner))
	defer unlock()

	var team *models.Team
	err := a.store.Update(ctx, func(tx store.Tx) error {
		var err error
		if team, err = getTeam(ctx, tx, owner); err != nil {
			return err
		}
		if err := tx.DeleteTeam(ctx, owner); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.ErrNoTeam
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("owner_id", owner.String()).
		Int("freed_players", len(team.Players)).
		Msg("deleted fantasy team")
	return team, nil
}

func getTeam(ctx context.Context, tx store.Tx, owner models.OwnerID) (*models.Team, error) {
	team, err := tx.GetTeam(ctx, owner)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.ErrNoTeam
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fantasy team: %w", err)
	}
	return team, nil
}

func (a *App) validateCreateFantasyTeamRequest(req CreateFantasyTeamRequest) error {
	if req.OwnerID == "" {
		return fmt.Errorf("%w: owner ID is required", models.ErrInvalidArgument)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: team name is required", models.ErrInvalidArgument)
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("%w: team name must be 100 characters or less", models.ErrInvalidArgument)
	}
	return nil
}
