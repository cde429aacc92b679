package main

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterbot/go/internal/fantasyteam"
	"github.com/mcdev12/rosterbot/go/internal/gateway"
	"github.com/mcdev12/rosterbot/go/internal/locks"
	"github.com/mcdev12/rosterbot/go/internal/notify"
	"github.com/mcdev12/rosterbot/go/internal/roster"
	"github.com/mcdev12/rosterbot/go/internal/store"
	"github.com/mcdev12/rosterbot/go/internal/trade"
	"github.com/mcdev12/rosterbot/go/internal/universe"
	"github.com/rs/zerolog/log"
)

type Services struct {
	FantasyTeam *fantasyteam.Service
	Roster      *roster.Service
	Trade       *trade.Service

	Sweeper *trade.Sweeper
	// Hub is nil when websocket delivery is disabled
	Hub *gateway.Hub

	closers []func() error
}

// Close releases notifier connections
func (s *Services) Close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			log.Warn().Err(err).Msg("Failed to close notifier")
		}
	}
}

func setupServices(ctx context.Context, cfg *Config, st store.Store, u *universe.Universe) (*Services, error) {
	// store → app → service; one lock manager and clock shared by every app
	clock := clockwork.NewRealClock()
	lm := locks.NewManager()
	services := &Services{}

	sinks := notify.Fanout{notify.LogNotifier{}}
	if cfg.Notify.NATS.Enabled {
		js, err := notify.NewJetStreamNotifier(ctx, cfg.Notify.NATS.JetStreamConfig)
		if err != nil {
			return nil, err
		}
		services.closers = append(services.closers, js.Close)
		sinks = append(sinks, js)
		log.Info().Str("url", cfg.Notify.NATS.URL).Str("stream", cfg.Notify.NATS.StreamName).Msg("Publishing trade events to JetStream")
	}
	if cfg.Notify.WebSocket.Enabled {
		services.Hub = gateway.NewHub(cfg.Notify.WebSocket.ConnectionConfig)
		sinks = append(sinks, services.Hub)
	}

	// FantasyTeam
	fantasyTeamApp := fantasyteam.NewApp(st, lm, clock)
	services.FantasyTeam = fantasyteam.NewService(fantasyTeamApp)

	// Roster
	rosterApp := roster.NewApp(st, lm, u, clock)
	services.Roster = roster.NewService(rosterApp)

	// Trade
	tradeApp := trade.NewApp(st, lm, clock, sinks)
	services.Trade = trade.NewService(tradeApp)
	services.Sweeper = trade.NewSweeper(tradeApp, clock, cfg.SweepInterval)

	return services, nil
}
