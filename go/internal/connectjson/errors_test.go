package connectjson

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToConnectErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code connect.Code
	}{
		{models.ErrAlreadyHasTeam, connect.CodeAlreadyExists},
		{models.ErrNoTeam, connect.CodeNotFound},
		{models.ErrUnknownPlayer, connect.CodeNotFound},
		{&models.NotFreeAgentError{Player: "ZIM", Owner: "2"}, connect.CodeFailedPrecondition},
		{models.ErrNotOnTeam, connect.CodeFailedPrecondition},
		{models.InvalidTrade(models.ErrNoTeam), connect.CodeFailedPrecondition},
		{models.ErrNotParticipant, connect.CodePermissionDenied},
		{fmt.Errorf("validation failed: %w", models.ErrInvalidArgument), connect.CodeInvalidArgument},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{errors.New("disk on fire"), connect.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			var cerr *connect.Error
			require.ErrorAs(t, ToConnectError(tc.err), &cerr)
			assert.Equal(t, tc.code, cerr.Code())
		})
	}
}

func TestRoundTripThroughHeaders(t *testing.T) {
	cerr := ToConnectError(models.InvalidTrade(models.ErrNotOnTeam))

	back := FromConnectError(cerr)
	assert.ErrorIs(t, back, models.ErrInvalidTrade)
	assert.ErrorIs(t, back, models.ErrNotOnTeam)
	assert.NotErrorIs(t, back, models.ErrNoTeam)

	var connectErr *connect.Error
	require.ErrorAs(t, back, &connectErr)
	assert.Equal(t, connect.CodeFailedPrecondition, connectErr.Code())
}

func TestNotFreeAgentKeepsOwner(t *testing.T) {
	back := FromConnectError(ToConnectError(&models.NotFreeAgentError{Player: "ZIM", Owner: "2"}))

	var nfa *models.NotFreeAgentError
	require.ErrorAs(t, back, &nfa)
	assert.Equal(t, models.OwnerID("2"), nfa.Owner)
	assert.ErrorIs(t, back, models.ErrNotFreeAgent)
}

func TestUnknownErrorsPassThrough(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, FromConnectError(plain))

	internal := ToConnectError(plain)
	assert.Equal(t, internal, FromConnectError(internal))
	assert.Nil(t, ToConnectError(nil))
}

func TestCodecName(t *testing.T) {
	c := Codec{}
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(map[string]string{"owner_id": "1"})
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, "1", out["owner_id"])
}
