package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nascom/sulu/internal/db"
	"github.com/Nascom/sulu/internal/devdb"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	image    = flag.String("image", devdb.DefaultImage, "PostgreSQL image to run")
	seed     = flag.Bool("seed", true, "insert demo pages after migrating")
	webspace = flag.String("webspace", "sulu_io", "webspace of the demo pages")
	locale   = flag.String("locale", "en", "locale of the demo pages")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	flag.Parse()

	container, err := devdb.Start(ctx, *image)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start database")
	}
	defer func() {
		if err := container.Terminate(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to terminate database")
		}
	}()

	connectionURL, err := container.ConnectionURL(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to determine connection URL")
		return
	}
	if err := container.MigrateToLatest(ctx); err != nil {
		log.Error().Err(err).Msg("failed to migrate database")
		return
	}

	if *seed {
		pool, err := pgxpool.New(ctx, connectionURL.String())
		if err != nil {
			log.Error().Err(err).Msg("failed to connect to database")
			return
		}
		inserted, err := devdb.Seed(ctx, db.NewRepository(pool), devdb.DemoDocuments(*webspace, *locale, time.Now().UTC()))
		pool.Close()
		if err != nil {
			log.Error().Err(err).Msg("failed to seed database")
			return
		}
		log.Info().Int("pages", inserted).Msg("seeded demo pages")
	}

	log.Info().Str("url", connectionURL.String()).Msg("database ready, export SULU_DATABASE_URL to use it")
	<-ctx.Done()
	log.Info().Msg("shutting down...")
}
