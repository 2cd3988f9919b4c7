package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MosinFAM/grams/internal/config"
	"github.com/MosinFAM/grams/internal/logger"
	"github.com/MosinFAM/grams/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("could not load config")
	}

	log := logger.New(cfg.Logging)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
}
