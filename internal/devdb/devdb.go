// Package devdb runs a throwaway PostgreSQL server for local development and
// fills it with demo pages.
package devdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nascom/sulu/internal/db"
	"github.com/Nascom/sulu/internal/domain"
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const DefaultImage = "docker.io/postgres:15-alpine"

type Container struct {
	container *postgres.PostgresContainer
}

var dbConfig = struct {
	Username string
	Password string
	DBName   string
}{
	Username: "sulu",
	Password: "sulu",
	DBName:   "sulu",
}

type ConnectionURL struct {
	Host     string
	Port     nat.Port
	Username string
	Password string
	DBName   string
}

func NewConnectionURL(host string, port nat.Port) ConnectionURL {
	return ConnectionURL{
		Host:     host,
		Port:     port,
		Username: dbConfig.Username,
		Password: dbConfig.Password,
		DBName:   dbConfig.DBName,
	}
}

func (u ConnectionURL) String() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", u.Username, u.Password, u.Host, u.Port.Int(), u.DBName)
}

var defaultPGPort = nat.Port("5432/tcp")

func Start(ctx context.Context, image string) (dbContainer Container, err error) {
	if image == "" {
		image = DefaultImage
	}
	container, err := postgres.RunContainer(ctx,
		postgres.WithDatabase(dbConfig.DBName),
		postgres.WithUsername(dbConfig.Username),
		postgres.WithPassword(dbConfig.Password),
		testcontainers.WithImage(image),
		testcontainers.WithWaitStrategy(wait.ForSQL(defaultPGPort, "pgx", func(host string, port nat.Port) string {
			return NewConnectionURL(host, port).String()
		})),
	)
	if err != nil {
		err = fmt.Errorf("failed to initialize database server: %w", err)
		return
	}
	dbContainer = Container{container}
	return
}

func (dbContainer Container) ConnectionURL(ctx context.Context) (connectionURL ConnectionURL, err error) {
	host, err := dbContainer.container.Host(ctx)
	if err != nil {
		err = fmt.Errorf("failed to determine host name: %w", err)
		return
	}
	port, err := dbContainer.container.MappedPort(ctx, defaultPGPort)
	if err != nil {
		err = fmt.Errorf("failed to determine port: %w", err)
		return
	}
	connectionURL = NewConnectionURL(host, port)
	return
}

func (dbContainer Container) MigrateToLatest(ctx context.Context) error {
	connectionURL, err := dbContainer.ConnectionURL(ctx)
	if err != nil {
		return err
	}
	return db.MigrateTo(ctx, connectionURL.String(), "latest")
}

func (dbContainer Container) Terminate(ctx context.Context) error {
	return dbContainer.container.Terminate(ctx)
}

var demoTitles = []string{
	"Homepage", "About us", "Team", "Contact", "Blog", "News", "Events",
	"Careers", "Imprint", "Privacy policy", "Products", "Services",
}

// DemoDocuments returns a page for each demo title. Every third page is left
// unpublished so website search has something to skip.
func DemoDocuments(webspace, locale string, now time.Time) []domain.Document {
	docs := make([]domain.Document, 0, len(demoTitles))
	for i, title := range demoTitles {
		created := now.Add(time.Duration(i-len(demoTitles)) * time.Hour)
		docs = append(docs, domain.Document{
			ID:              uuid.New(),
			Webspace:        webspace,
			Locale:          locale,
			Title:           title,
			ResourceLocator: "/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
			Template:        "default",
			Published:       i%3 != 2,
			Created:         created,
			Changed:         created,
		})
	}
	return docs
}

// Seed inserts docs, skipping the ones that already exist.
func Seed(ctx context.Context, repo domain.DocumentRepository, docs []domain.Document) (inserted int, err error) {
	for _, doc := range docs {
		err = repo.InsertDocument(ctx, doc)
		if errors.Is(err, domain.ErrConflict) {
			continue
		}
		if err != nil {
			err = fmt.Errorf("failed to insert %s: %w", doc.ResourceLocator, err)
			return
		}
		inserted++
	}
	err = nil
	return
}
