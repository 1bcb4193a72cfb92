// Package memstore is an in-memory document store built on hashicorp/go-memdb.
// It mirrors the PostgreSQL repository and is meant for development and tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/hashicorp/go-memdb"
)

const table = "documents"

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		table: {
			Name: table,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Key"},
				},
				"scope": {
					Name:    "scope",
					Unique:  false,
					Indexer: &memdb.StringFieldIndex{Field: "Scope"},
				},
				"locator": {
					Name:    "locator",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Locator"},
				},
			},
		},
	},
}

type entry struct {
	Key     string
	Scope   string
	Locator string
	Doc     domain.Document
}

func scopeOf(webspace, locale string) string {
	return webspace + "\x00" + locale
}

func newEntry(doc domain.Document) *entry {
	scope := scopeOf(doc.Webspace, doc.Locale)
	return &entry{
		Key:     doc.ID.String(),
		Scope:   scope,
		Locator: scope + "\x00" + doc.ResourceLocator,
		Doc:     doc,
	}
}

type Store struct {
	db *memdb.MemDB
}

var _ domain.DocumentRepository = (*Store)(nil)

func New() (*Store, error) {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return nil, err
	}
	return &Store{db}, nil
}

func (store *Store) scope(webspace, locale string) ([]domain.Document, error) {
	txn := store.db.Txn(false)
	it, err := txn.Get(table, "scope", scopeOf(webspace, locale))
	if err != nil {
		return nil, err
	}
	var docs []domain.Document
	for obj := it.Next(); obj != nil; obj = it.Next() {
		docs = append(docs, obj.(*entry).Doc)
	}
	return docs, nil
}

func containsFold(value, term string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}

var searchValues = map[string]func(domain.Document) string{
	"title":    func(doc domain.Document) string { return doc.Title },
	"url":      func(doc domain.Document) string { return doc.ResourceLocator },
	"template": func(doc domain.Document) string { return doc.Template },
}

// Comparators return a negative number when a sorts before b.
var sortComparators = map[string]func(a, b domain.Document) int{
	"title":    func(a, b domain.Document) int { return strings.Compare(a.Title, b.Title) },
	"url":      func(a, b domain.Document) int { return strings.Compare(a.ResourceLocator, b.ResourceLocator) },
	"template": func(a, b domain.Document) int { return strings.Compare(a.Template, b.Template) },
	"published": func(a, b domain.Document) int {
		switch {
		case a.Published == b.Published:
			return 0
		case !a.Published:
			return -1
		default:
			return 1
		}
	},
	"created": func(a, b domain.Document) int { return a.Created.Compare(b.Created) },
	"changed": func(a, b domain.Document) int { return a.Changed.Compare(b.Changed) },
}

func matchesSearch(doc domain.Document, search string, fields []string) bool {
	for _, field := range fields {
		if containsFold(searchValues[field](doc), search) {
			return true
		}
	}
	return false
}

func (store *Store) ListDocuments(ctx context.Context, params domain.ListDocumentsParams) (page domain.Page[domain.Document], err error) {
	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "created"
	}
	compare, ok := sortComparators[sortBy]
	if !ok {
		err = fmt.Errorf("%w: field %q is not sortable", domain.ErrInvalidArgument, params.SortBy)
		return
	}
	fields := params.SearchFields
	if len(fields) == 0 {
		for field := range searchValues {
			fields = append(fields, field)
		}
	}
	for _, field := range fields {
		if _, ok := searchValues[field]; !ok {
			err = fmt.Errorf("%w: field %q is not searchable", domain.ErrInvalidArgument, field)
			return
		}
	}

	docs, err := store.scope(params.Webspace, params.Locale)
	if err != nil {
		return
	}
	matched := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if params.Search == "" || matchesSearch(doc, params.Search, fields) {
			matched = append(matched, doc)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		c := compare(matched[i], matched[j])
		if params.SortOrder == domain.SortOrderDesc {
			c = -c
		}
		if c == 0 {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return c < 0
	})

	page.Number = params.Limit.PageNumber(params.Offset)
	page.Size = params.Limit
	page.Total = int64(len(matched))
	if !params.Limit.IsUnlimited() {
		start := params.Offset
		if start > len(matched) {
			start = len(matched)
		}
		end := start + int(params.Limit)
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	page.Items = matched
	return
}

func (store *Store) FetchDocument(ctx context.Context, params domain.FetchDocumentParams) (doc domain.Document, err error) {
	txn := store.db.Txn(false)
	obj, err := txn.First(table, "id", params.ID.String())
	if err != nil {
		return
	}
	if obj == nil {
		err = domain.ErrNotFound
		return
	}
	doc = obj.(*entry).Doc
	return
}

func (store *Store) InsertDocument(ctx context.Context, doc domain.Document) error {
	e := newEntry(doc)
	txn := store.db.Txn(true)
	defer txn.Abort()
	for index, key := range map[string]string{"id": e.Key, "locator": e.Locator} {
		existing, err := txn.First(table, index, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}
	}
	if err := txn.Insert(table, e); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (store *Store) SearchDocuments(ctx context.Context, params domain.SearchDocumentsParams) ([]domain.Document, error) {
	docs, err := store.scope(params.Webspace, params.Locale)
	if err != nil {
		return nil, err
	}
	hits := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		if !doc.Published {
			continue
		}
		matches := true
		for _, term := range params.Terms {
			if !containsFold(doc.Title, term) && !containsFold(doc.ResourceLocator, term) {
				matches = false
				break
			}
		}
		if matches {
			hits = append(hits, doc)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Title == hits[j].Title {
			return hits[i].ID.String() < hits[j].ID.String()
		}
		return hits[i].Title < hits[j].Title
	})
	return hits, nil
}
