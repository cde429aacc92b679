package main

import (
	"fmt"
	"net/http"

	"github.com/mcdev12/rosterbot/go/internal/api/fantasyteam/v1/fantasyteamv1connect"
	"github.com/mcdev12/rosterbot/go/internal/api/roster/v1/rosterv1connect"
	"github.com/mcdev12/rosterbot/go/internal/api/trade/v1/tradev1connect"
	"github.com/mcdev12/rosterbot/go/internal/connectjson"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(port string, services *Services) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{connectjson.ErrorHeader, connectjson.OwnerHeader},
	})

	registerServices(mux, services)

	if services.Hub != nil {
		mux.Handle("/ws/trades", services.Hub)
	}

	setupHealthCheck(mux)

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: h2c.NewHandler(c.Handler(mux), &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	// Register fantasy team service
	fantasyTeamServicePath, fantasyTeamServiceHandler := fantasyteamv1connect.NewFantasyTeamServiceHandler(services.FantasyTeam)
	mux.Handle(fantasyTeamServicePath, fantasyTeamServiceHandler)

	// Register roster service
	rosterServicePath, rosterServiceHandler := rosterv1connect.NewRosterServiceHandler(services.Roster)
	mux.Handle(rosterServicePath, rosterServiceHandler)

	// Register trade service
	tradeServicePath, tradeServiceHandler := tradev1connect.NewTradeServiceHandler(services.Trade)
	mux.Handle(tradeServicePath, tradeServiceHandler)
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("Failed to write health check response")
		}
	})
}
