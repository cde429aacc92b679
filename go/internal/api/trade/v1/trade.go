// Package tradev1 holds the wire messages of league.trade.v1.TradeService.
package tradev1

import "time"

type Trade struct {
	Id              string    `json:"id"`
	ProposerId      string    `json:"proposer_id"`
	CounterpartyId  string    `json:"counterparty_id"`
	OfferedPlayer   string    `json:"offered_player"`
	RequestedPlayer string    `json:"requested_player"`
	CorrelationKey  string    `json:"correlation_key,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type ProposeTradeRequest struct {
	ProposerId      string `json:"proposer_id"`
	CounterpartyId  string `json:"counterparty_id"`
	OfferedPlayer   string `json:"offered_player"`
	RequestedPlayer string `json:"requested_player"`
}

type ProposeTradeResponse struct {
	Trade *Trade `json:"trade"`
}

// AssignCorrelationRequest addresses the trade by TradeId when set, otherwise
// by the proposal tuple
type AssignCorrelationRequest struct {
	TradeId         string `json:"trade_id,omitempty"`
	ProposerId      string `json:"proposer_id,omitempty"`
	CounterpartyId  string `json:"counterparty_id,omitempty"`
	OfferedPlayer   string `json:"offered_player,omitempty"`
	RequestedPlayer string `json:"requested_player,omitempty"`
	CorrelationKey  string `json:"correlation_key"`
}

type AssignCorrelationResponse struct {
	Trade *Trade `json:"trade"`
}

type GetTradeRequest struct {
	CorrelationKey string `json:"correlation_key"`
}

type GetTradeResponse struct {
	Trade *Trade `json:"trade"`
}

// ListTradesRequest lists every pending trade, or only those involving OwnerId
type ListTradesRequest struct {
	OwnerId string `json:"owner_id,omitempty"`
}

type ListTradesResponse struct {
	Trades []*Trade `json:"trades"`
}

type ExecuteTradeRequest struct {
	CorrelationKey string `json:"correlation_key"`
}

type ExecuteTradeResponse struct {
	Trade *Trade `json:"trade"`
}

type CancelTradeRequest struct {
	CorrelationKey string `json:"correlation_key"`
}

type CancelTradeResponse struct {
	Trade *Trade `json:"trade"`
}

// RespondTradeRequest is used by Accept, Deny and Withdraw. ActorId is the
// owner issuing the command.
type RespondTradeRequest struct {
	CorrelationKey string `json:"correlation_key"`
	ActorId        string `json:"actor_id"`
}

type RespondTradeResponse struct {
	Trade *Trade `json:"trade"`
}

type SweepTradesRequest struct{}

type ExpiredTrade struct {
	Trade  *Trade `json:"trade"`
	Reason string `json:"reason"`
}

type SweepTradesResponse struct {
	Expired []*ExpiredTrade `json:"expired"`
}
