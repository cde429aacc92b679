package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterbot/go/internal/models"
)

// ProposeTradeRequest is a one-for-one swap offer: the proposer gives Offered
// and asks the counterparty for Requested
type ProposeTradeRequest struct {
	ProposerID     models.OwnerID
	CounterpartyID models.OwnerID
	Offered        models.PlayerID
	Requested      models.PlayerID
}

// AssignCorrelationRequest attaches the front end's notification key to a
// pending trade. TradeID addresses the trade directly when known; otherwise
// the earliest unassigned pending trade matching the proposal tuple is used.
type AssignCorrelationRequest struct {
	TradeID        uuid.UUID
	ProposerID     models.OwnerID
	CounterpartyID models.OwnerID
	Offered        models.PlayerID
	Requested      models.PlayerID
	Key            string
}

// ExpiredTrade is a trade the sweeper cancelled because it stopped being valid
type ExpiredTrade struct {
	Trade  models.Trade
	Reason error
}

// Notifier receives trade events after the change is committed. Errors are
// logged by the app and never fail the operation.
type Notifier interface {
	NotifyTrade(ctx context.Context, event models.TradeEvent) error
}
