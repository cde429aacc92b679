package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(outcome models.TradeOutcome) models.TradeEvent {
	key := "msg-9"
	return models.TradeEvent{
		ID:      uuid.New(),
		Outcome: outcome,
		Trade: models.Trade{
			ID:             uuid.New(),
			ProposerID:     "1",
			CounterpartyID: "2",
			Offered:        "ZIM",
			Requested:      "GIR",
			CorrelationKey: &key,
			Status:         models.TradeStatusPending,
		},
		Reason:     "invalid trade: player is not on the team",
		OccurredAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

type funcNotifier func(ctx context.Context, event models.TradeEvent) error

func (f funcNotifier) NotifyTrade(ctx context.Context, event models.TradeEvent) error {
	return f(ctx, event)
}

func TestFanoutTriesEverySink(t *testing.T) {
	var calls []string
	sinkErr := errors.New("sink down")
	fan := Fanout{
		funcNotifier(func(context.Context, models.TradeEvent) error { calls = append(calls, "a"); return sinkErr }),
		funcNotifier(func(context.Context, models.TradeEvent) error { calls = append(calls, "b"); return nil }),
	}

	err := fan.NotifyTrade(context.Background(), sampleEvent(models.TradeOutcomeExecuted))
	assert.ErrorIs(t, err, sinkErr)
	assert.Equal(t, []string{"a", "b"}, calls)

	assert.NoError(t, Fanout{}.NotifyTrade(context.Background(), sampleEvent(models.TradeOutcomeExecuted)))
}

func TestLogNotifierFields(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	event := sampleEvent(models.TradeOutcomeExpired)
	require.NoError(t, LogNotifier{}.NotifyTrade(context.Background(), event))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "EXPIRED", line["outcome"])
	assert.Equal(t, "msg-9", line["correlation_key"])
	assert.Equal(t, "Zim", line["offered"])
	assert.Equal(t, event.Trade.ID.String(), line["trade_id"])
}

func TestSubjectPerOutcome(t *testing.T) {
	n := &JetStreamNotifier{config: DefaultJetStreamConfig()}
	assert.Equal(t, "league.trades.expired", n.Subject(sampleEvent(models.TradeOutcomeExpired)))
	assert.Equal(t, "league.trades.executed", n.Subject(sampleEvent(models.TradeOutcomeExecuted)))
}

func TestJetStreamPublish(t *testing.T) {
	url := os.Getenv("ROSTERBOT_TEST_NATS_URL")
	if url == "" {
		t.Skip("ROSTERBOT_TEST_NATS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := DefaultJetStreamConfig()
	cfg.URL = url
	suffix := uuid.NewString()[:8]
	cfg.StreamName = "LEAGUE_TRADES_TEST_" + suffix
	cfg.SubjectPrefix = "league.test." + suffix

	n, err := NewJetStreamNotifier(ctx, cfg)
	require.NoError(t, err)
	defer n.Close()

	sub, err := n.nc.SubscribeSync(cfg.SubjectPrefix + ".>")
	require.NoError(t, err)
	require.NoError(t, n.nc.Flush())

	event := sampleEvent(models.TradeOutcomeExecuted)
	require.NoError(t, n.NotifyTrade(ctx, event))

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, event.ID.String(), msg.Header.Get("Event-ID"))
	assert.Equal(t, cfg.SubjectPrefix+".executed", msg.Subject)

	var got models.TradeEvent
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, event.Trade.ID, got.Trade.ID)
}
