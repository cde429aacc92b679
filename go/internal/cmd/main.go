package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mcdev12/rosterbot/go/internal/dbconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Could not load .env file")
	}

	serverCfg, err := loadServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load server config")
	}
	setupLogging(serverCfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, serverCfg); err != nil {
		log.Fatal().Err(err).Msg("League server exited")
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func run(ctx context.Context, serverCfg ServerConfig) error {
	config, err := loadConfig(serverCfg.LeagueConfig)
	if err != nil {
		return err
	}

	dbCfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return err
	}
	st, db, err := setupStore(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}()

	u, err := loadUniverse(ctx, config, db)
	if err != nil {
		return err
	}

	services, err := setupServices(ctx, config, st, u)
	if err != nil {
		return err
	}
	defer services.Close()

	if services.Hub != nil {
		go services.Hub.Start(ctx)
	}
	if err := services.Sweeper.Start(ctx); err != nil {
		return err
	}

	server := setupServer(serverCfg.Port, services)
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("League server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	case err := <-serveErr:
		_ = services.Sweeper.Stop()
		return err
	}

	if err := services.Sweeper.Stop(); err != nil {
		log.Warn().Err(err).Msg("Failed to stop sweeper")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
