package connectjson

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/mcdev12/rosterbot/go/internal/models"
)

const (
	// ErrorHeader carries models.ErrorCode on every league error response
	ErrorHeader = "League-Error"
	// OwnerHeader names the owner holding a player on NOT_FREE_AGENT errors
	OwnerHeader = "League-Owner"
)

// ToConnectError converts an app error into a *connect.Error with a code the
// client can branch on and the league error code in ErrorHeader.
func ToConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	cerr := connect.NewError(codeFor(err), err)
	if code := models.ErrorCode(err); code != "" {
		cerr.Meta().Set(ErrorHeader, code)
	}
	var nfa *models.NotFreeAgentError
	if errors.As(err, &nfa) {
		cerr.Meta().Set(OwnerHeader, nfa.Owner.String())
	}
	return cerr
}

func codeFor(err error) connect.Code {
	switch {
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, models.ErrInvalidTrade),
		errors.Is(err, models.ErrNotFreeAgent),
		errors.Is(err, models.ErrNotOnTeam),
		errors.Is(err, models.ErrSameTeam):
		return connect.CodeFailedPrecondition
	case errors.Is(err, models.ErrInvalidArgument):
		return connect.CodeInvalidArgument
	case errors.Is(err, models.ErrNoTeam),
		errors.Is(err, models.ErrUnknownPlayer),
		errors.Is(err, models.ErrTradeNotFound):
		return connect.CodeNotFound
	case errors.Is(err, models.ErrAlreadyHasTeam),
		errors.Is(err, models.ErrCorrelationKeyInUse),
		errors.Is(err, models.ErrCorrelationAssigned):
		return connect.CodeAlreadyExists
	case errors.Is(err, models.ErrNotParticipant):
		return connect.CodePermissionDenied
	default:
		return connect.CodeInternal
	}
}

// FromConnectError rebuilds the league error carried by a client-side connect
// error so callers can keep using errors.Is on the models sentinels. Errors
// without a league code are returned unchanged.
func FromConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return err
	}
	code := connectErr.Meta().Get(ErrorHeader)
	if code == "" {
		return err
	}
	leagueErr := models.ErrorFromCode(code)
	if leagueErr == nil {
		return err
	}
	if errors.Is(leagueErr, models.ErrNotFreeAgent) {
		if owner := connectErr.Meta().Get(OwnerHeader); owner != "" {
			return &models.NotFreeAgentError{Owner: models.OwnerID(owner)}
		}
	}
	return &remoteError{league: leagueErr, cause: connectErr}
}

// remoteError keeps the connect error for inspection while matching the
// rebuilt league error
type remoteError struct {
	league error
	cause  *connect.Error
}

func (e *remoteError) Error() string {
	return e.cause.Error()
}

func (e *remoteError) Unwrap() []error {
	return []error{e.league, e.cause}
}
