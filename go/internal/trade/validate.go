package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/store"
)

// validate checks, in order, SameTeam, NoTeam and NotOnTeam. Every failure
// matches models.ErrInvalidTrade and the specific reason.
func validate(ctx context.Context, tx store.Tx, proposer, counterparty models.OwnerID, offered, requested models.PlayerID) error {
	if proposer == counterparty {
		return models.InvalidTrade(models.ErrSameTeam)
	}

	proposerTeam, err := lookupTeam(ctx, tx, proposer)
	if err != nil {
		return err
	}
	counterpartyTeam, err := lookupTeam(ctx, tx, counterparty)
	if err != nil {
		return err
	}

	if !proposerTeam.HasPlayer(offered) {
		return models.InvalidTrade(fmt.Errorf("%w: %s is not on %s", models.ErrNotOnTeam, offered, proposerTeam.Name))
	}
	if !counterpartyTeam.HasPlayer(requested) {
		return models.InvalidTrade(fmt.Errorf("%w: %s is not on %s", models.ErrNotOnTeam, requested, counterpartyTeam.Name))
	}
	return nil
}

func validateTrade(ctx context.Context, tx store.Tx, t *models.Trade) error {
	return validate(ctx, tx, t.ProposerID, t.CounterpartyID, t.Offered, t.Requested)
}

func lookupTeam(ctx context.Context, tx store.Tx, owner models.OwnerID) (*models.Team, error) {
	team, err := tx.GetTeam(ctx, owner)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.InvalidTrade(fmt.Errorf("%w: %s", models.ErrNoTeam, owner))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// isValidationFailure separates "the trade is invalid" from store failures
func isValidationFailure(err error) bool {
	return errors.Is(err, models.ErrInvalidTrade)
}
