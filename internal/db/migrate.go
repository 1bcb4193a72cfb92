package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var Migrations embed.FS

func prepareGoose() error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Open connects through database/sql, which is what goose needs.
func Open(connectionURL string) (*sql.DB, error) {
	db, err := goose.OpenDBWithDriver("pgx", connectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect with database: %w", err)
	}
	return db, nil
}

// Run executes an arbitrary goose command such as "status" or "down".
func Run(db *sql.DB, command string, args ...string) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.Run(command, db, "migrations", args...)
}

func MigrateTo(ctx context.Context, connectionURL string, version string) (err error) {
	db, err := Open(connectionURL)
	if err != nil {
		return
	}

	defer func() {
		dbErr := db.Close()
		if dbErr != nil {
			if err == nil {
				err = fmt.Errorf("failed to close database connection: %w", dbErr)
			} else {
				err = fmt.Errorf("multiple errors occurred: %w, %s", err, dbErr)
			}
		}
	}()

	if err = prepareGoose(); err != nil {
		return
	}
	if version == "latest" {
		err = goose.UpContext(ctx, db, "migrations")
		return
	}
	versionInt, err := strconv.ParseInt(version, 10, 0)
	if err != nil {
		err = fmt.Errorf("failed to parse version: %w", err)
		return
	}
	err = goose.UpToContext(ctx, db, "migrations", versionInt)
	return
}
