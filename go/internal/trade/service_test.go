package trade

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tradev1 "github.com/mcdev12/rosterbot/go/internal/api/trade/v1"
	"github.com/mcdev12/rosterbot/go/internal/api/trade/v1/tradev1connect"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, l *league) *tradev1connect.TradeServiceClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(tradev1connect.NewTradeServiceHandler(NewService(l.trades)))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return tradev1connect.NewTradeServiceClient(server.Client(), server.URL)
}

func TestServiceTradeFlow(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	client := newTestClient(t, l)

	proposed, err := client.ProposeTrade(ctx, &tradev1.ProposeTradeRequest{
		ProposerId: "1", CounterpartyId: "2", OfferedPlayer: "zim", RequestedPlayer: "gir",
	})
	require.NoError(t, err)
	assert.Equal(t, "ZIM", proposed.Trade.OfferedPlayer)
	assert.Equal(t, "PENDING", proposed.Trade.Status)
	assert.Empty(t, proposed.Trade.CorrelationKey)

	assigned, err := client.AssignCorrelation(ctx, &tradev1.AssignCorrelationRequest{
		TradeId: proposed.Trade.Id, CorrelationKey: "msg-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-42", assigned.Trade.CorrelationKey)

	listed, err := client.ListTrades(ctx, &tradev1.ListTradesRequest{OwnerId: "2"})
	require.NoError(t, err)
	require.Len(t, listed.Trades, 1)

	_, err = client.AcceptTrade(ctx, &tradev1.RespondTradeRequest{CorrelationKey: "msg-42", ActorId: "1"})
	assert.ErrorIs(t, err, models.ErrNotParticipant)

	accepted, err := client.AcceptTrade(ctx, &tradev1.RespondTradeRequest{CorrelationKey: "msg-42", ActorId: "2"})
	require.NoError(t, err)
	assert.Equal(t, proposed.Trade.Id, accepted.Trade.Id)

	_, err = client.GetTrade(ctx, &tradev1.GetTradeRequest{CorrelationKey: "msg-42"})
	assert.ErrorIs(t, err, models.ErrTradeNotFound)

	assert.Equal(t, []models.PlayerID{"GIR"}, l.players(t, "1"))
}

func TestServiceTradeErrors(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	client := newTestClient(t, l)

	_, err := client.ProposeTrade(ctx, &tradev1.ProposeTradeRequest{
		ProposerId: "1", CounterpartyId: "1", OfferedPlayer: "ZIM", RequestedPlayer: "ZIM",
	})
	assert.ErrorIs(t, err, models.ErrInvalidTrade)
	assert.ErrorIs(t, err, models.ErrSameTeam)

	_, err = client.ExecuteTrade(ctx, &tradev1.ExecuteTradeRequest{CorrelationKey: "missing"})
	assert.ErrorIs(t, err, models.ErrInvalidTrade)
	assert.ErrorIs(t, err, models.ErrTradeNotFound)

	_, err = client.AssignCorrelation(ctx, &tradev1.AssignCorrelationRequest{TradeId: "not-a-uuid", CorrelationKey: "k"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = client.DenyTrade(ctx, &tradev1.RespondTradeRequest{CorrelationKey: "k"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestServiceSweep(t *testing.T) {
	ctx := context.Background()
	l := newLeague(t)
	client := newTestClient(t, l)
	tr := l.propose(t, "ZIM", "GIR")

	_, err := l.roster.DropPlayer(ctx, "2", "GIR")
	require.NoError(t, err)

	swept, err := client.SweepTrades(ctx, &tradev1.SweepTradesRequest{})
	require.NoError(t, err)
	require.Len(t, swept.Expired, 1)
	assert.Equal(t, tr.ID.String(), swept.Expired[0].Trade.Id)
	assert.Equal(t, "INVALID_TRADE.NOT_ON_TEAM", swept.Expired[0].Reason)
}
