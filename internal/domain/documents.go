//go:generate go run github.com/abice/go-enum@v0.5.6 --marshal --nocase

package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ENUM(asc, desc)
type SortOrder int

// Document is a content page of a webspace in one locale.
type Document struct {
	ID              uuid.UUID `json:"id"`
	Webspace        string    `json:"webspace"`
	Locale          string    `json:"locale"`
	Title           string    `json:"title"`
	ResourceLocator string    `json:"url"`
	Template        string    `json:"template"`
	Published       bool      `json:"published"`
	Created         time.Time `json:"created"`
	Changed         time.Time `json:"changed"`
}

func (doc Document) Record() Record {
	return NewRecord(map[string]any{
		"id":        doc.ID.String(),
		"webspace":  doc.Webspace,
		"locale":    doc.Locale,
		"title":     doc.Title,
		"url":       doc.ResourceLocator,
		"template":  doc.Template,
		"published": doc.Published,
		"created":   doc.Created.UTC().Format(time.RFC3339),
		"changed":   doc.Changed.UTC().Format(time.RFC3339),
	})
}

func ValidateDocument(doc Document) []string {
	var errs []string
	if doc.ID == (uuid.UUID{}) {
		errs = append(errs, "id: null UUID is not allowed")
	}
	if doc.Webspace == "" {
		errs = append(errs, "webspace: must not be empty")
	}
	if doc.Locale == "" {
		errs = append(errs, "locale: must not be empty")
	}
	if doc.Title == "" {
		errs = append(errs, "title: must not be empty")
	}
	if doc.ResourceLocator == "" || doc.ResourceLocator[0] != '/' {
		errs = append(errs, "url: must be an absolute path")
	}
	return errs
}

// DocumentFields describes the list columns of documents.
var DocumentFields = FieldDescriptors{
	{Name: "id", TranslationKey: "public.id", Visibility: VisibilityAlways, Sortable: false, Type: "string"},
	{Name: "title", TranslationKey: "public.title", Visibility: VisibilityYes, Sortable: true, Searchable: true, Type: "string"},
	{Name: "url", TranslationKey: "public.url", Visibility: VisibilityYes, Sortable: true, Searchable: true, Type: "string"},
	{Name: "template", TranslationKey: "sulu_page.template", Visibility: VisibilityNo, Sortable: true, Searchable: true, Type: "string"},
	{Name: "published", TranslationKey: "sulu_page.published", Visibility: VisibilityYes, Sortable: true, Type: "boolean"},
	{Name: "webspace", TranslationKey: "sulu_page.webspace", Visibility: VisibilityNo, Sortable: false, Type: "string"},
	{Name: "locale", TranslationKey: "public.locale", Visibility: VisibilityNo, Sortable: false, Type: "string"},
	{Name: "created", TranslationKey: "public.created", Visibility: VisibilityNo, Sortable: true, Type: "datetime"},
	{Name: "changed", TranslationKey: "public.changed", Visibility: VisibilityYes, Sortable: true, Type: "datetime"},
}

type ListDocumentsParams struct {
	Webspace     string
	Locale       string
	Offset       int
	Limit        Limit
	SortBy       string
	SortOrder    SortOrder
	Search       string
	SearchFields []string
}

type FetchDocumentParams struct {
	ID uuid.UUID
}

type SearchDocumentsParams struct {
	Webspace string
	Locale   string
	Terms    []string
}

type DocumentRepository interface {
	ListDocuments(ctx context.Context, params ListDocumentsParams) (Page[Document], error)
	FetchDocument(ctx context.Context, params FetchDocumentParams) (Document, error)
	InsertDocument(ctx context.Context, doc Document) error
	SearchDocuments(ctx context.Context, params SearchDocumentsParams) ([]Document, error)
}
