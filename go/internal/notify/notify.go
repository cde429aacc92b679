// Package notify delivers committed trade events to external sinks
package notify

import (
	"context"
	"errors"

	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Notifier is satisfied by every sink in this package
type Notifier interface {
	NotifyTrade(ctx context.Context, event models.TradeEvent) error
}

// LogNotifier writes each event to the global zerolog logger
type LogNotifier struct{}

func (LogNotifier) NotifyTrade(_ context.Context, event models.TradeEvent) error {
	e := log.Info()
	if event.Outcome == models.TradeOutcomeExpired {
		e = log.Warn()
	}
	e.Str("event_id", event.ID.String()).
		Str("outcome", string(event.Outcome)).
		Str("trade_id", event.Trade.ID.String()).
		Str("correlation_key", event.Trade.Key()).
		Str("proposer_id", event.Trade.ProposerID.String()).
		Str("counterparty_id", event.Trade.CounterpartyID.String()).
		Str("offered", event.Trade.Offered.DisplayName()).
		Str("requested", event.Trade.Requested.DisplayName()).
		Str("reason", event.Reason).
		Msg("trade event")
	return nil
}

// Fanout delivers every event to each sink in order. All sinks are tried; the
// joined error reports the ones that failed.
type Fanout []Notifier

func (f Fanout) NotifyTrade(ctx context.Context, event models.TradeEvent) error {
	var errs []error
	for _, n := range f {
		if err := n.NotifyTrade(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
