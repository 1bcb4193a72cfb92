package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nascom/sulu/internal/domain"
)

var ErrUnknownIndex = errors.New("unknown search index")

const (
	indexPrefix = "page_"
	indexSuffix = "_published"
)

// IndexName returns the index holding the published pages of a webspace.
func IndexName(webspace string) string {
	return indexPrefix + webspace + indexSuffix
}

func ParseIndexName(index string) (webspace string, err error) {
	if !strings.HasPrefix(index, indexPrefix) || !strings.HasSuffix(index, indexSuffix) {
		err = fmt.Errorf("%w: %s", ErrUnknownIndex, index)
		return
	}
	webspace = strings.TrimSuffix(strings.TrimPrefix(index, indexPrefix), indexSuffix)
	if webspace == "" {
		err = fmt.Errorf("%w: %s", ErrUnknownIndex, index)
	}
	return
}

type Query struct {
	Expression string
	Terms      []string
	Locale     string
	Index      string
}

func NewQuery(raw string, webspace string, locale string) Query {
	return Query{
		Expression: BuildQuery(raw),
		Terms:      Terms(raw),
		Locale:     locale,
		Index:      IndexName(webspace),
	}
}

type Hit struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Locale string `json:"locale"`
}

type Manager interface {
	Search(ctx context.Context, query Query) ([]Hit, error)
}

// RepositoryManager answers queries from the document store. It requires
// every term to match and ignores the fuzzy parts of the expression.
type RepositoryManager struct {
	Documents domain.DocumentRepository
}

var _ Manager = RepositoryManager{}

func (m RepositoryManager) Search(ctx context.Context, query Query) ([]Hit, error) {
	webspace, err := ParseIndexName(query.Index)
	if err != nil {
		return nil, err
	}
	docs, err := m.Documents.SearchDocuments(ctx, domain.SearchDocumentsParams{
		Webspace: webspace,
		Locale:   query.Locale,
		Terms:    query.Terms,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	hits := make([]Hit, 0, len(docs))
	for _, doc := range docs {
		hits = append(hits, Hit{
			ID:     doc.ID.String(),
			Title:  doc.Title,
			URL:    doc.ResourceLocator,
			Locale: doc.Locale,
		})
	}
	return hits, nil
}
