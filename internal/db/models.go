package db

import (
	"time"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/google/uuid"
)

type DocumentDTO struct {
	ID              uuid.UUID `db:"id"`
	Webspace        string    `db:"webspace"`
	Locale          string    `db:"locale"`
	Title           string    `db:"title"`
	ResourceLocator string    `db:"resource_locator"`
	Template        string    `db:"template"`
	Published       bool      `db:"published"`
	Created         time.Time `db:"created"`
	Changed         time.Time `db:"changed"`
}

var documentColumns = []string{"id", "webspace", "locale", "title", "resource_locator", "template", "published", "created", "changed"}

// Columns a list may be ordered by, keyed by field name.
var sortColumns = map[string]string{
	"title":     "title",
	"url":       "resource_locator",
	"template":  "template",
	"published": "published",
	"created":   "created",
	"changed":   "changed",
}

var searchColumns = map[string]string{
	"title":    "title",
	"url":      "resource_locator",
	"template": "template",
}

func dtoFromDocument(doc domain.Document) DocumentDTO {
	return DocumentDTO{
		ID:              doc.ID,
		Webspace:        doc.Webspace,
		Locale:          doc.Locale,
		Title:           doc.Title,
		ResourceLocator: doc.ResourceLocator,
		Template:        doc.Template,
		Published:       doc.Published,
		Created:         doc.Created,
		Changed:         doc.Changed,
	}
}

func documentFromDTO(dto DocumentDTO) domain.Document {
	return domain.Document{
		ID:              dto.ID,
		Webspace:        dto.Webspace,
		Locale:          dto.Locale,
		Title:           dto.Title,
		ResourceLocator: dto.ResourceLocator,
		Template:        dto.Template,
		Published:       dto.Published,
		Created:         dto.Created,
		Changed:         dto.Changed,
	}
}
