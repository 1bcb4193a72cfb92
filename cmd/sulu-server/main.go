package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nascom/sulu/internal/config"
	"github.com/Nascom/sulu/internal/db"
	"github.com/Nascom/sulu/internal/domain"
	"github.com/Nascom/sulu/internal/logger"
	"github.com/Nascom/sulu/internal/memstore"
	"github.com/Nascom/sulu/internal/server"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	listenAddress = flag.String("listen", "", "address to listen on, overrides SULU_LISTEN_ADDRESS")
	dbURL         = flag.String("db-url", "", "URL-formatted connection string to the database server, overrides SULU_DATABASE_URL")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *dbURL != "" {
		os.Setenv("SULU_DATABASE_URL", *dbURL)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if *listenAddress != "" {
		cfg.ListenAddress = *listenAddress
	}

	appLogger, err := logger.New(cfg.Logger, cfg.Environment, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up logging")
	}
	log.Logger = appLogger

	var documents domain.DocumentRepository
	switch cfg.Storage {
	case "memory":
		log.Warn().Msg("using in-memory storage, documents are lost on shutdown")
		store, err := memstore.New()
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize in-memory storage")
		}
		documents = store
	default:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		documents = db.NewRepository(pool)
	}

	var baseURL *url.URL
	if cfg.BaseURL != "" {
		baseURL, err = url.Parse(cfg.BaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse base URL")
		}
	}

	router := server.New(server.Options{
		Documents:       documents,
		Logger:          appLogger,
		BaseURL:         baseURL,
		AbsoluteLinks:   cfg.AbsoluteLinks,
		DefaultWebspace: cfg.DefaultWebspace,
		DefaultLocale:   cfg.DefaultLocale,
		Timeout:         cfg.RequestTimeout,
	})

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen on specified address")
	}
	httpServer := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}

	done := make(chan error, 1)
	go func() {
		done <- httpServer.Serve(listener)
	}()
	log.Info().Str("address", listener.Addr().String()).Str("storage", cfg.Storage).Msg("listening")

	select {
	case err = <-done:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down gracefully")
		}
	}
}
