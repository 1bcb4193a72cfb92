package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Nascom/sulu/internal/db"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var connectionURL = flag.String("db-url", "", "URL-formatted connection string to the DB to operate upon")

func main() {
	ctx := context.Background()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	flag.Parse()

	if *connectionURL == "" {
		fmt.Print("missing required -db-url param\n")
		flag.Usage()
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print("expected a subcommand\n")
		flag.Usage()
		os.Exit(1)
	}
	command := args[0]

	if command != "migrate" {
		conn, err := db.Open(*connectionURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect with database")
		}
		defer conn.Close()
		if err := db.Run(conn, command, args[1:]...); err != nil {
			log.Fatal().Err(err).Str("command", command).Msg("goose command failed")
		}
		return
	}
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	version := migrateCmd.String("to", "", "version to which the database should be migrated. May specify \"latest\" to migrate to the latest version.")

	migrateCmd.Parse(args[1:])

	if *version == "" {
		fmt.Print("missing required parameter -to\n")
		migrateCmd.Usage()
		os.Exit(1)
	}
	err := db.MigrateTo(ctx, *connectionURL, *version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to run migration")
	}
	log.Info().Str("version", *version).Msg("migrated")
}
