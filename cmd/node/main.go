package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blocknode/go-node/internal/api"
	"blocknode/go-node/internal/config"
	"blocknode/go-node/internal/engine"
	"blocknode/go-node/internal/metrics"
	"blocknode/go-node/internal/peer"
)

/*
MAIN ENTRY POINT – BLOCKCHAIN NODE

1. Parse the bind port (the CLI's single positional argument).
2. Load configuration (config.yaml if present, defaults otherwise).
3. Build the logger, metrics, peer transport, and engine.
4. Start the HTTP server.
5. Handle graceful shutdown on SIGINT/SIGTERM.
*/

func main() {
	flag.Parse()
	port := "8080"
	if flag.NArg() > 0 {
		port = flag.Arg(0)
	}

	cfg, err := config.Load("config.yaml", port)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := setupLogger(&cfg.Logging)
	logger.Info().Str("addr", cfg.Server.Addr).Int("difficulty", cfg.Chain.Difficulty).Msg("starting blockchain node")

	m := metrics.New()

	transport := peer.NewHTTPTransport(cfg.Chain.PeerTimeout)
	eng := engine.New(transport, cfg.Chain.Difficulty, logger)
	eng.SetSelf(peer.Peer{Address: fmt.Sprintf("http://127.0.0.1:%s", port)})

	apiServer := api.NewServer(eng, logger)

	mux := http.NewServeMux()
	mux.Handle("/", apiServer.Handler(cfg, m))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	logger.Info().Msg("node stopped")
}

func setupLogger(cfg *config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
