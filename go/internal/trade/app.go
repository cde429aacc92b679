package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterbot/go/internal/locks"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/rs/zerolog/log"
)

// App runs the trade protocol: proposal, correlation, execution, the three
// cancellation paths and the expiration sweep. Every terminal transition locks
// both owners and both players of the trade and re-reads it inside the store
// transaction, so the first caller wins and later ones see ErrTradeNotFound.
type App struct {
	store    store.Store
	locks    *locks.Manager
	clock    clockwork.Clock
	notifier Notifier
}

// NewApp creates a new trade App. notifier may be nil.
func NewApp(st store.Store, lm *locks.Manager, clock clockwork.Clock, notifier Notifier) *App {
	return &App{
		store:    st,
		locks:    lm,
		clock:    clock,
		notifier: notifier,
	}
}

// ProposeTrade validates the swap against the current rosters and stores it
// as a pending trade without a correlation key
func (a *App) ProposeTrade(ctx context.Context, req ProposeTradeRequest) (*models.Trade, error) {
	t := models.Trade{
		ID:             uuid.New(),
		ProposerID:     req.ProposerID,
		CounterpartyID: req.CounterpartyID,
		Offered:        models.NormalizePlayerID(string(req.Offered)),
		Requested:      models.NormalizePlayerID(string(req.Requested)),
		Status:         models.TradeStatusPending,
		CreatedAt:      a.clock.Now().UTC(),
	}

	unlock := a.lock(&t)
	err := a.store.Update(ctx, func(tx store.Tx) error {
		if err := validateTrade(ctx, tx, &t); err != nil {
			return err
		}
		if err := tx.InsertTrade(ctx, t); err != nil {
			return fmt.Errorf("failed to insert trade: %w", err)
		}
		return nil
	})
	unlock()
	if err != nil {
		if isValidationFailure(err) {
			log.Debug().Err(err).
				Str("proposer_id", t.ProposerID.String()).
				Str("counterparty_id", t.CounterpartyID.String()).
				Msg("trade proposal rejected")
		}
		return nil, err
	}

	log.Info().
		Str("trade_id", t.ID.String()).
		Str("proposer_id", t.ProposerID.String()).
		Str("counterparty_id", t.CounterpartyID.String()).
		Str("offered", t.Offered.String()).
		Str("requested", t.Requested.String()).
		Msg("trade proposed")
	a.notify(ctx, models.TradeOutcomeProposed, t, nil)
	return &t, nil
}

// AssignCorrelation attaches key to a pending trade. Assigning the key a
// trade already has is a no-op.
func (a *App) AssignCorrelation(ctx context.Context, req AssignCorrelationRequest) (*models.Trade, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, fmt.Errorf("%w: correlation key is required", models.ErrInvalidArgument)
	}

	// the lock set only depends on the tuple, so it can be taken before the
	// trade is chosen
	tuple := models.Trade{
		ProposerID:     req.ProposerID,
		CounterpartyID: req.CounterpartyID,
		Offered:        models.NormalizePlayerID(string(req.Offered)),
		Requested:      models.NormalizePlayerID(string(req.Requested)),
	}
	if req.TradeID != uuid.Nil {
		peeked, err := a.peek(ctx, func(tx store.Tx) (*models.Trade, error) {
			return tx.GetTrade(ctx, req.TradeID)
		})
		if err != nil {
			return nil, err
		}
		tuple = *peeked
	} else if tuple.ProposerID == "" || tuple.CounterpartyID == "" || tuple.Offered == "" || tuple.Requested == "" {
		return nil, fmt.Errorf("%w: trade ID or full trade tuple is required", models.ErrInvalidArgument)
	}

	unlock := a.lock(&tuple)
	defer unlock()

	var target *models.Trade
	err := a.store.Update(ctx, func(tx store.Tx) error {
		var err error
		if req.TradeID != uuid.Nil {
			target, err = getForResolve(ctx, tx, req.TradeID)
		} else {
			target, err = selectByTuple(ctx, tx, &tuple, key)
		}
		if err != nil {
			return err
		}

		switch target.Key() {
		case key:
			return nil
		case "":
		default:
			return fmt.Errorf("%w: trade %s has key %s", models.ErrCorrelationAssigned, target.ID, target.Key())
		}

		if other, err := tx.GetTradeByCorrelationKey(ctx, key); err == nil {
			return fmt.Errorf("%w: key %s belongs to trade %s", models.ErrCorrelationKeyInUse, key, other.ID)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to look up correlation key: %w", err)
		}
		if err := tx.SetTradeCorrelationKey(ctx, target.ID, key); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return models.ErrCorrelationKeyInUse
			}
			return fmt.Errorf("failed to set correlation key: %w", err)
		}
		target.CorrelationKey = &key
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("trade_id", target.ID.String()).
		Str("correlation_key", key).
		Msg("trade correlation assigned")
	return target, nil
}

// selectByTuple prefers a matching trade that already holds key, then the
// earliest matching trade without one
func selectByTuple(ctx context.Context, tx store.Tx, tuple *models.Trade, key string) (*models.Trade, error) {
	trades, err := tx.ListTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	var candidate *models.Trade
	for i := range trades {
		t := &trades[i]
		if !t.Matches(tuple.ProposerID, tuple.CounterpartyID, tuple.Offered, tuple.Requested) {
			continue
		}
		if t.Key() == key {
			return t, nil
		}
		if candidate == nil && t.CorrelationKey == nil {
			candidate = t
		}
	}
	if candidate == nil {
		return nil, models.InvalidTrade(models.ErrTradeNotFound)
	}
	return candidate, nil
}

// GetTrade returns the pending trade addressed by key
func (a *App) GetTrade(ctx context.Context, key string) (*models.Trade, error) {
	var t *models.Trade
	err := a.store.View(ctx, func(tx store.Tx) error {
		var err error
		t, err = findTrade(ctx, tx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTrades returns every pending trade in creation order
func (a *App) ListTrades(ctx context.Context) ([]models.Trade, error) {
	var trades []models.Trade
	err := a.store.View(ctx, func(tx store.Tx) error {
		var err error
		trades, err = tx.ListTrades(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// ListTradesForOwner returns the pending trades the owner is part of
func (a *App) ListTradesForOwner(ctx context.Context, owner models.OwnerID) ([]models.Trade, error) {
	trades, err := a.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Involves(owner) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ValidateTrade reports whether t could be executed against the current rosters
func (a *App) ValidateTrade(ctx context.Context, t *models.Trade) error {
	return a.store.View(ctx, func(tx store.Tx) error {
		return validateTrade(ctx, tx, t)
	})
}

// ExecuteTrade revalidates the trade and swaps both players. The two roster
// moves and the trade deletion commit together or not at all.
func (a *App) ExecuteTrade(ctx context.Context, key string) (*models.Trade, error) {
	return a.execute(ctx, key, nil)
}

// AcceptTrade executes the trade on behalf of its counterparty
func (a *App) AcceptTrade(ctx context.Context, key string, actor models.OwnerID) (*models.Trade, error) {
	return a.execute(ctx, key, func(t *models.Trade) error {
		if t.CounterpartyID != actor {
			return fmt.Errorf("%w: only %s can accept", models.ErrNotParticipant, t.CounterpartyID)
		}
		return nil
	})
}

// CancelTrade deletes the trade whether or not it is still valid
func (a *App) CancelTrade(ctx context.Context, key string) (*models.Trade, error) {
	return a.cancel(ctx, key, models.TradeOutcomeCancelled, nil)
}

// DenyTrade cancels the trade on behalf of its counterparty
func (a *App) DenyTrade(ctx context.Context, key string, actor models.OwnerID) (*models.Trade, error) {
	return a.cancel(ctx, key, models.TradeOutcomeDenied, func(t *models.Trade) error {
		if t.CounterpartyID != actor {
			return fmt.Errorf("%w: only %s can deny", models.ErrNotParticipant, t.CounterpartyID)
		}
		return nil
	})
}

// WithdrawTrade cancels the trade on behalf of its proposer
func (a *App) WithdrawTrade(ctx context.Context, key string, actor models.OwnerID) (*models.Trade, error) {
	return a.cancel(ctx, key, models.TradeOutcomeCancelled, func(t *models.Trade) error {
		if t.ProposerID != actor {
			return fmt.Errorf("%w: only %s can withdraw", models.ErrNotParticipant, t.ProposerID)
		}
		return nil
	})
}

func (a *App) execute(ctx context.Context, key string, authorize func(*models.Trade) error) (*models.Trade, error) {
	peeked, err := a.peek(ctx, func(tx store.Tx) (*models.Trade, error) {
		return findTrade(ctx, tx, key)
	})
	if err != nil {
		return nil, err
	}

	unlock := a.lock(peeked)
	var executed *models.Trade
	err = a.store.Update(ctx, func(tx store.Tx) error {
		t, err := getForResolve(ctx, tx, peeked.ID)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(t); err != nil {
				return err
			}
		}
		if err := validateTrade(ctx, tx, t); err != nil {
			return err
		}
		if err := swap(ctx, tx, t, a.clock.Now().UTC()); err != nil {
			return err
		}
		executed = t
		return nil
	})
	unlock()
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("trade_id", executed.ID.String()).
		Str("proposer_id", executed.ProposerID.String()).
		Str("counterparty_id", executed.CounterpartyID.String()).
		Str("offered", executed.Offered.String()).
		Str("requested", executed.Requested.String()).
		Msg("trade executed")
	a.notify(ctx, models.TradeOutcomeExecuted, *executed, nil)
	return executed, nil
}

// swap moves offered to the counterparty and requested to the proposer, then
// deletes the trade. Both players leave their rosters before either is added
// so the one-roster-per-player constraint holds at every statement.
func swap(ctx context.Context, tx store.Tx, t *models.Trade, at time.Time) error {
	if err := tx.RemoveRosterPlayer(ctx, t.ProposerID, t.Offered); err != nil {
		return fmt.Errorf("failed to remove offered player: %w", err)
	}
	if err := tx.RemoveRosterPlayer(ctx, t.CounterpartyID, t.Requested); err != nil {
		return fmt.Errorf("failed to remove requested player: %w", err)
	}
	if err := tx.AddRosterPlayer(ctx, t.CounterpartyID, t.Offered, at); err != nil {
		return fmt.Errorf("failed to move offered player: %w", err)
	}
	if err := tx.AddRosterPlayer(ctx, t.ProposerID, t.Requested, at); err != nil {
		return fmt.Errorf("failed to move requested player: %w", err)
	}
	if err := tx.DeleteTrade(ctx, t.ID); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}

func (a *App) cancel(ctx context.Context, key string, outcome models.TradeOutcome, authorize func(*models.Trade) error) (*models.Trade, error) {
	peeked, err := a.peek(ctx, func(tx store.Tx) (*models.Trade, error) {
		return findTrade(ctx, tx, key)
	})
	if err != nil {
		return nil, err
	}

	unlock := a.lock(peeked)
	var (
		cancelled *models.Trade
		reason    error
	)
	err = a.store.Update(ctx, func(tx store.Tx) error {
		t, err := getForResolve(ctx, tx, peeked.ID)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(t); err != nil {
				return err
			}
		}
		// cancellation proceeds either way, the result only explains it
		if reason = validateTrade(ctx, tx, t); reason != nil && !isValidationFailure(reason) {
			return reason
		}
		if err := tx.DeleteTrade(ctx, t.ID); err != nil {
			return fmt.Errorf("failed to delete trade: %w", err)
		}
		cancelled = t
		return nil
	})
	unlock()
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("trade_id", cancelled.ID.String()).
		Str("outcome", string(outcome)).
		AnErr("reason", reason).
		Msg("trade cancelled")
	a.notify(ctx, outcome, *cancelled, reason)
	return cancelled, nil
}

// Sweep cancels every pending trade that no longer validates and reports it.
// Each trade is revalidated under its own lock set, so a sweep never races an
// execute or cancel of the same trade.
func (a *App) Sweep(ctx context.Context) ([]ExpiredTrade, error) {
	pending, err := a.ListTrades(ctx)
	if err != nil {
		return nil, err
	}

	var (
		expired []ExpiredTrade
		errs    []error
	)
	for i := range pending {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		exp, err := a.expire(ctx, &pending[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("trade %s: %w", pending[i].ID, err))
			continue
		}
		if exp == nil {
			continue
		}
		expired = append(expired, *exp)
		a.notify(ctx, models.TradeOutcomeExpired, exp.Trade, exp.Reason)
	}
	return expired, errors.Join(errs...)
}

func (a *App) expire(ctx context.Context, pending *models.Trade) (*ExpiredTrade, error) {
	unlock := a.lock(pending)
	defer unlock()

	var exp *ExpiredTrade
	err := a.store.Update(ctx, func(tx store.Tx) error {
		t, err := tx.GetTrade(ctx, pending.ID)
		if errors.Is(err, store.ErrNotFound) {
			// resolved since the listing
			return nil
		}
		if err != nil {
			return err
		}
		reason := validateTrade(ctx, tx, t)
		if reason == nil {
			return nil
		}
		if !isValidationFailure(reason) {
			return reason
		}
		if err := tx.DeleteTrade(ctx, t.ID); err != nil {
			return fmt.Errorf("failed to delete trade: %w", err)
		}
		exp = &ExpiredTrade{Trade: *t, Reason: reason}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if exp != nil {
		log.Info().
			Str("trade_id", exp.Trade.ID.String()).
			Str("correlation_key", exp.Trade.Key()).
			AnErr("reason", exp.Reason).
			Msg("trade expired")
	}
	return exp, nil
}

func (a *App) lock(t *models.Trade) (unlock func()) {
	return a.locks.Lock(
		locks.OwnerKey(t.ProposerID),
		locks.OwnerKey(t.CounterpartyID),
		locks.PlayerKey(t.Offered),
		locks.PlayerKey(t.Requested),
	)
}

// peek reads a trade outside the lock to learn its lock set. A missing trade
// is reported as an invalid trade.
func (a *App) peek(ctx context.Context, get func(tx store.Tx) (*models.Trade, error)) (*models.Trade, error) {
	var t *models.Trade
	err := a.store.View(ctx, func(tx store.Tx) error {
		var err error
		t, err = get(tx)
		return err
	})
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, models.ErrTradeNotFound) {
		return nil, models.InvalidTrade(models.ErrTradeNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// getForResolve re-reads a trade under its lock set
func getForResolve(ctx context.Context, tx store.Tx, id uuid.UUID) (*models.Trade, error) {
	t, err := tx.GetTrade(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, models.InvalidTrade(models.ErrTradeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return t, nil
}

// findTrade resolves key as a correlation key, falling back to the trade ID
// for trades the front end has not correlated yet
func findTrade(ctx context.Context, tx store.Tx, key string) (*models.Trade, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: trade key is required", models.ErrInvalidArgument)
	}
	t, err := tx.GetTradeByCorrelationKey(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		id, parseErr := uuid.Parse(key)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %s", models.ErrTradeNotFound, key)
		}
		t, err = tx.GetTrade(ctx, id)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", models.ErrTradeNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return t, nil
}

func (a *App) notify(ctx context.Context, outcome models.TradeOutcome, t models.Trade, reason error) {
	if a.notifier == nil {
		return
	}
	event := models.TradeEvent{
		ID:         uuid.New(),
		Outcome:    outcome,
		Trade:      t,
		OccurredAt: a.clock.Now().UTC(),
	}
	if reason != nil {
		event.Reason = reason.Error()
	}
	if err := a.notifier.NotifyTrade(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("trade_id", t.ID.String()).
			Str("outcome", string(outcome)).
			Msg("failed to deliver trade event")
	}
}
