package gateway

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeEvent(proposer, counterparty models.OwnerID, outcome models.TradeOutcome) models.TradeEvent {
	return models.TradeEvent{
		ID:      uuid.New(),
		Outcome: outcome,
		Trade: models.Trade{
			ID:             uuid.New(),
			ProposerID:     proposer,
			CounterpartyID: counterparty,
			Offered:        "ZIM",
			Requested:      "GIR",
			Status:         models.TradeStatusPending,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(ConnectionConfig{})
	go hub.Start(ctx)

	server := httptest.NewServer(hub)
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHubDeliversToInterestedOwners(t *testing.T) {
	hub, server := startHub(t)
	owner2 := dial(t, server, "?owner_id=2")
	everyone := dial(t, server, "")

	require.Eventually(t, func() bool { return hub.Count() == 2 }, 2*time.Second, 10*time.Millisecond)

	other := tradeEvent("3", "4", models.TradeOutcomeProposed)
	mine := tradeEvent("1", "2", models.TradeOutcomeExecuted)
	require.NoError(t, hub.NotifyTrade(context.Background(), other))
	require.NoError(t, hub.NotifyTrade(context.Background(), mine))

	var msg Message
	require.NoError(t, owner2.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, owner2.ReadJSON(&msg))
	assert.Equal(t, "trade.executed", msg.Type)
	assert.Equal(t, mine.Trade.ID, msg.Event.Trade.ID)

	require.NoError(t, everyone.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, everyone.ReadJSON(&msg))
	assert.Equal(t, other.Trade.ID, msg.Event.Trade.ID)
	require.NoError(t, everyone.ReadJSON(&msg))
	assert.Equal(t, mine.Trade.ID, msg.Event.Trade.ID)
}

func TestHubUnregistersClosedConnections(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, server, "")
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestNotifyTradeWhenFull(t *testing.T) {
	hub := NewHub(ConnectionConfig{BufferedEvents: 1})
	require.NoError(t, hub.NotifyTrade(context.Background(), tradeEvent("1", "2", models.TradeOutcomeProposed)))
	assert.ErrorIs(t, hub.NotifyTrade(context.Background(), tradeEvent("1", "2", models.TradeOutcomeProposed)), ErrBroadcastFull)
}
