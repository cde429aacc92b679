package models

import (
	"time"

	"github.com/google/uuid"
)

// TradeStatus is the persisted status of a trade. Resolved trades are deleted,
// so PENDING is the only status ever stored.
type TradeStatus string

const (
	TradeStatusPending TradeStatus = "PENDING"
)

// Trade is a one-for-one swap proposal: the proposer gives Offered and
// receives Requested from the counterparty.
type Trade struct {
	ID             uuid.UUID   `json:"id"`
	ProposerID     OwnerID     `json:"proposer_id"`
	CounterpartyID OwnerID     `json:"counterparty_id"`
	Offered        PlayerID    `json:"offered"`
	Requested      PlayerID    `json:"requested"`
	CorrelationKey *string     `json:"correlation_key,omitempty"` // set by the front end once its notification exists
	Status         TradeStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Key returns the correlation key or "" when none has been assigned
func (t *Trade) Key() string {
	if t.CorrelationKey == nil {
		return ""
	}
	return *t.CorrelationKey
}

// Matches reports whether two trades describe the same swap between the same owners
func (t *Trade) Matches(proposer, counterparty OwnerID, offered, requested PlayerID) bool {
	return t.ProposerID == proposer &&
		t.CounterpartyID == counterparty &&
		t.Offered == offered &&
		t.Requested == requested
}

// Involves reports whether the owner is either side of the trade
func (t *Trade) Involves(owner OwnerID) bool {
	return t.ProposerID == owner || t.CounterpartyID == owner
}

// TradeOutcome describes what happened to a trade
type TradeOutcome string

const (
	TradeOutcomeProposed  TradeOutcome = "PROPOSED"
	TradeOutcomeExecuted  TradeOutcome = "EXECUTED"
	TradeOutcomeCancelled TradeOutcome = "CANCELLED"
	TradeOutcomeDenied    TradeOutcome = "DENIED"
	TradeOutcomeExpired   TradeOutcome = "EXPIRED"
)

// TradeEvent is reported to notification sinks after a trade changes state
type TradeEvent struct {
	ID         uuid.UUID    `json:"id"`
	Outcome    TradeOutcome `json:"outcome"`
	Trade      Trade        `json:"trade"`
	Reason     string       `json:"reason,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}
