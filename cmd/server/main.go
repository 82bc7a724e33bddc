package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/marking-day/internal/config"
	"github.com/stemsi/marking-day/internal/handler"
	"github.com/stemsi/marking-day/internal/logger"
	"github.com/stemsi/marking-day/internal/middleware"
	"github.com/stemsi/marking-day/internal/router"
	"github.com/stemsi/marking-day/internal/service"
	"github.com/stemsi/marking-day/internal/simulation"
	"github.com/stemsi/marking-day/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Int("max_class_size", cfg.MaxClassSize).
		Msg("Starting Marking Day")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Services ──────────────────────────────────────────
	engine := simulation.NewEngine(simulation.NewRandomGrades(cfg.GradeSeed))

	tokenService, err := service.NewStateTokenService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize state tokens")
	}
	simService := service.NewSimulationService(engine, tokenService, cfg.MaxClassSize, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Simulation: handler.NewSimulationHandler(simService, log),
		WS:         handler.NewWSHandler(simService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	stopSweep := make(chan struct{})

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute)
		go limiter.SweepEvery(time.Minute, stopSweep)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, limiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	close(stopSweep)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
