package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebanking/bff-gateway/internal/api"
	"github.com/ebanking/bff-gateway/internal/config"
	"github.com/ebanking/bff-gateway/internal/logger"
	"github.com/ebanking/bff-gateway/internal/tracing"
	zlog "github.com/rs/zerolog/log"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("config load failed")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.Init(rootCtx, tracing.SettingsFromConfig(cfg, version))
	if err != nil {
		zlog.Fatal().Err(err).Msg("tracing init failed")
	}

	router, err := api.NewRouter(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("router init failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().
			Str("port", cfg.Port).
			Str("env", cfg.AppEnv).
			Bool("tracing", tp.Enabled()).
			Msg("bff gateway starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		zlog.Info().Msg("shutdown signal received")
	case err := <-errCh:
		zlog.Error().Err(err).Msg("http server crashed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("http shutdown failed")
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("tracer shutdown failed")
	}
	zlog.Info().Msg("shutdown complete")
}
