package models

import (
	"errors"
	"fmt"
	"strings"
)

// Caller-facing error kinds. Every failure returned by the roster and trade
// apps matches one of these with errors.Is.
var (
	ErrAlreadyHasTeam  = errors.New("owner already has a team")
	ErrNoTeam          = errors.New("owner has no team")
	ErrNotFreeAgent    = errors.New("player is not a free agent")
	ErrNotOnTeam       = errors.New("player is not on the team")
	ErrInvalidTrade    = errors.New("invalid trade")
	ErrSameTeam        = errors.New("cannot trade with yourself")
	ErrUnknownPlayer   = errors.New("player does not exist")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTradeNotFound   = errors.New("trade not found")
	ErrNotParticipant  = errors.New("owner is not allowed to resolve this trade")

	ErrCorrelationKeyInUse = errors.New("correlation key already assigned to another trade")
	ErrCorrelationAssigned = errors.New("trade already has a different correlation key")
)

// NotFreeAgentError is returned when adding a player that is already rostered.
// Owner is the team holding the player so callers can tell "already on your
// team" apart from "owned by another team".
type NotFreeAgentError struct {
	Player PlayerID
	Owner  OwnerID
}

func (e *NotFreeAgentError) Error() string {
	return fmt.Sprintf("player %s is on team owned by %s", e.Player, e.Owner)
}

func (e *NotFreeAgentError) Is(target error) bool {
	return target == ErrNotFreeAgent
}

// TradeError reports why a trade failed validation. It matches both
// ErrInvalidTrade and the underlying reason.
type TradeError struct {
	Reason error
}

func (e *TradeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidTrade, e.Reason)
}

func (e *TradeError) Is(target error) bool {
	return target == ErrInvalidTrade
}

func (e *TradeError) Unwrap() error {
	return e.Reason
}

// InvalidTrade wraps reason so it matches ErrInvalidTrade
func InvalidTrade(reason error) error {
	return &TradeError{Reason: reason}
}

const invalidTradeCode = "INVALID_TRADE"

var errorCodes = []struct {
	code string
	err  error
}{
	{"SAME_TEAM", ErrSameTeam},
	{"TRADE_NOT_FOUND", ErrTradeNotFound},
	{"NOT_PARTICIPANT", ErrNotParticipant},
	{"CORRELATION_KEY_IN_USE", ErrCorrelationKeyInUse},
	{"CORRELATION_ASSIGNED", ErrCorrelationAssigned},
	{"ALREADY_HAS_TEAM", ErrAlreadyHasTeam},
	{"NO_TEAM", ErrNoTeam},
	{"NOT_FREE_AGENT", ErrNotFreeAgent},
	{"NOT_ON_TEAM", ErrNotOnTeam},
	{"UNKNOWN_PLAYER", ErrUnknownPlayer},
	{"INVALID_ARGUMENT", ErrInvalidArgument},
}

// ErrorCode returns the stable wire code for err, or "" if err is not one of
// the league error kinds. Trade validation failures are encoded as
// INVALID_TRADE.<REASON>.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var tradeErr *TradeError
	if errors.As(err, &tradeErr) {
		if reason := baseCode(tradeErr.Reason); reason != "" {
			return invalidTradeCode + "." + reason
		}
		return invalidTradeCode
	}
	if errors.Is(err, ErrInvalidTrade) {
		return invalidTradeCode
	}
	return baseCode(err)
}

// ErrorFromCode maps a wire code produced by ErrorCode back to an error that
// matches the same sentinels.
func ErrorFromCode(code string) error {
	if code == invalidTradeCode {
		return ErrInvalidTrade
	}
	if reason, ok := strings.CutPrefix(code, invalidTradeCode+"."); ok {
		if err := fromBaseCode(reason); err != nil {
			return InvalidTrade(err)
		}
		return ErrInvalidTrade
	}
	return fromBaseCode(code)
}

func baseCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}

func fromBaseCode(code string) error {
	for _, c := range errorCodes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}
