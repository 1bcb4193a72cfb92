package testutils

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os/exec"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega/gexec"
)

func MigrateToLatest(ctx context.Context, migrateBinaryPath string, dbURL string) (err error) {
	migrateCmd := exec.Command(
		migrateBinaryPath,
		"-db-url", dbURL,
		"migrate",
		"-to", "latest")
	session, err := gexec.Start(migrateCmd, ginkgo.GinkgoWriter, ginkgo.GinkgoWriter)
	if err != nil {
		err = fmt.Errorf("failed to run command: %w", err)
		return
	}
	select {
	case <-session.Exited:
		if session.ExitCode() != 0 {
			err = fmt.Errorf("exited with non-zero code %d", session.ExitCode())
			return
		}
	case <-ctx.Done():
		err = fmt.Errorf("context cancelled: %w", context.Cause(ctx))
		return
	}
	return
}

func connectionString(config pgconn.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(config.User, config.Password),
		Host:     net.JoinHostPort(config.Host, strconv.Itoa(int(config.Port))),
		Path:     "/" + config.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type DBClient struct {
	conn *pgx.Conn
}

type TestDB struct {
	Name             string
	ConnectionString string
}

func NewDBClient(ctx context.Context, connString string) (client *DBClient, err error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		err = fmt.Errorf("failed to connect to database: %w", err)
		return
	}
	client = &DBClient{
		conn: conn,
	}
	return
}

const sourceDBName = "_original"

// InitializeSourceDB creates the migrated database every test database is
// copied from.
func (client DBClient) InitializeSourceDB(ctx context.Context, migrateBinaryPath string) (err error) {
	_, err = client.conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE "%s"`, sourceDBName))
	if err != nil {
		err = fmt.Errorf("failed to create database: %w", err)
		return
	}
	dbConfig := client.conn.Config().Copy()
	dbConfig.Database = sourceDBName
	err = MigrateToLatest(ctx, migrateBinaryPath, connectionString(dbConfig.Config))
	if err != nil {
		err = fmt.Errorf("failed to migrate database to latest schema version: %w", err)
	}
	return
}

func (client DBClient) CleanupSourceDB(ctx context.Context) (err error) {
	_, err = client.conn.Exec(ctx, fmt.Sprintf(`DROP DATABASE IF EXISTS "%s"`, sourceDBName))
	if err != nil {
		err = fmt.Errorf("failed to drop source database: %w", err)
	}
	return
}

func (client DBClient) CreateTestDB(ctx context.Context) (testDB TestDB, err error) {
	testDB.Name = GenerateRandomUUID().String()
	config := client.conn.Config().Copy()
	config.Database = testDB.Name
	testDB.ConnectionString = connectionString(config.Config)
	_, err = client.conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE "%s" WITH TEMPLATE "%s"`, testDB.Name, sourceDBName))
	if err != nil {
		err = fmt.Errorf("failed to copy database from source: %w", err)
	}
	return
}

// CleanupTestDB drops the database even while the API server is still
// connected to it.
func (client DBClient) CleanupTestDB(ctx context.Context, testDBName string) (err error) {
	_, err = client.conn.Exec(ctx, fmt.Sprintf(`DROP DATABASE IF EXISTS "%s" WITH (FORCE)`, testDBName))
	if err != nil {
		err = fmt.Errorf("failed to drop database: %w", err)
	}
	return
}

// ResetTestDB removes all documents from a test database.
func (client DBClient) ResetTestDB(ctx context.Context, testDB TestDB) error {
	conn, err := pgx.Connect(ctx, testDB.ConnectionString)
	if err != nil {
		return fmt.Errorf("failed to connect to test database: %w", err)
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, `TRUNCATE documents`)
	if err != nil {
		return fmt.Errorf("failed to truncate documents: %w", err)
	}
	return nil
}

func (client DBClient) Close(ctx context.Context) error {
	return client.conn.Close(ctx)
}
