package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tpc3/MisskeyIntegrate/internal/api"
	"github.com/tpc3/MisskeyIntegrate/internal/config"
	"github.com/tpc3/MisskeyIntegrate/internal/crypto"
	"github.com/tpc3/MisskeyIntegrate/internal/handlers"
	"github.com/tpc3/MisskeyIntegrate/internal/misskey"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	// Parse the webhook verification key
	pubkey, err := crypto.ParsePublicKey(cfg.DiscordPublicKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid DISCORD_PUBLIC_KEY")
	}

	// Create the Misskey client and handler
	mk := misskey.NewClient(cfg.Misskey.URL, cfg.Misskey.Token, cfg.Misskey.Timeout)
	h := handlers.NewHandler(cfg, logger, mk)

	// Create router
	router := api.NewRouter(logger, pubkey, h)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // ad creation waits on two upstream calls
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("misskey_url", cfg.Misskey.URL).
			Bool("reupload_image", cfg.Ad.ReuploadImage).
			Msg("starting MisskeyIntegrate server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
