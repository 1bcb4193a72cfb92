package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	_ "embed"

	"github.com/Masterminds/squirrel"
	"github.com/Nascom/sulu/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ domain.DocumentRepository = Repository{}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func listFilter(params domain.ListDocumentsParams) (squirrel.And, error) {
	filter := squirrel.And{squirrel.Eq{"webspace": params.Webspace, "locale": params.Locale}}
	if params.Search == "" {
		return filter, nil
	}
	fields := params.SearchFields
	if len(fields) == 0 {
		for field := range searchColumns {
			fields = append(fields, field)
		}
		sort.Strings(fields)
	}
	matches := squirrel.Or{}
	for _, field := range fields {
		column, ok := searchColumns[field]
		if !ok {
			return nil, fmt.Errorf("%w: field %q is not searchable", domain.ErrInvalidArgument, field)
		}
		matches = append(matches, squirrel.ILike{column: containsPattern(params.Search)})
	}
	return append(filter, matches), nil
}

func orderBy(params domain.ListDocumentsParams) ([]string, error) {
	if params.SortBy == "" {
		return []string{"created ASC", "id ASC"}, nil
	}
	column, ok := sortColumns[params.SortBy]
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not sortable", domain.ErrInvalidArgument, params.SortBy)
	}
	direction := "ASC"
	if params.SortOrder == domain.SortOrderDesc {
		direction = "DESC"
	}
	return []string{column + " " + direction, "id ASC"}, nil
}

func (repo Repository) ListDocuments(ctx context.Context, params domain.ListDocumentsParams) (page domain.Page[domain.Document], err error) {
	filter, err := listFilter(params)
	if err != nil {
		return
	}
	order, err := orderBy(params)
	if err != nil {
		return
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("documents").Where(filter).ToSql()
	if err != nil {
		err = fmt.Errorf("failed to build count query: %w", err)
		return
	}
	listQuery := psql.Select(documentColumns...).From("documents").Where(filter).OrderBy(order...)
	if !params.Limit.IsUnlimited() {
		listQuery = listQuery.Limit(uint64(params.Limit)).Offset(uint64(params.Offset))
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		err = fmt.Errorf("failed to build list query: %w", err)
		return
	}

	page.Number = params.Limit.PageNumber(params.Offset)
	page.Size = params.Limit
	err = repo.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&page.Total); err != nil {
			return fmt.Errorf("failed to count documents: %w", err)
		}
		rows, err := tx.Query(ctx, listSQL, listArgs...)
		if err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		dtos, err := pgx.CollectRows(rows, pgx.RowToStructByName[DocumentDTO])
		if err != nil {
			return fmt.Errorf("failed to map row to DocumentDTO: %w", err)
		}
		page.Items = make([]domain.Document, 0, len(dtos))
		for _, dto := range dtos {
			page.Items = append(page.Items, documentFromDTO(dto))
		}
		return nil
	})
	return
}

//go:embed queries/fetch-document.sql
var fetchDocumentQuery string

func (repo Repository) FetchDocument(ctx context.Context, params domain.FetchDocumentParams) (doc domain.Document, err error) {
	rows, err := repo.Query(ctx, fetchDocumentQuery, pgx.NamedArgs{"id": params.ID})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByName[DocumentDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to DocumentDTO: %w", err)
		return
	}
	if len(dtos) == 0 {
		err = ErrNotFound
		return
	}
	doc = documentFromDTO(dtos[0])
	return
}

//go:embed queries/insert-document.sql
var insertDocumentQuery string

func (repo Repository) InsertDocument(ctx context.Context, doc domain.Document) error {
	dto := dtoFromDocument(doc)
	_, err := repo.Exec(ctx, insertDocumentQuery, pgx.NamedArgs{
		"id":               dto.ID,
		"webspace":         dto.Webspace,
		"locale":           dto.Locale,
		"title":            dto.Title,
		"resource_locator": dto.ResourceLocator,
		"template":         dto.Template,
		"published":        dto.Published,
		"created":          dto.Created,
		"changed":          dto.Changed,
	})

	var pgErr *pgconn.PgError
	if err != nil && errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrConflict
	}

	return err
}

func (repo Repository) SearchDocuments(ctx context.Context, params domain.SearchDocumentsParams) ([]domain.Document, error) {
	filter := squirrel.And{squirrel.Eq{"webspace": params.Webspace, "locale": params.Locale, "published": true}}
	for _, term := range params.Terms {
		pattern := containsPattern(term)
		filter = append(filter, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"resource_locator": pattern},
		})
	}
	sql, args, err := psql.Select(documentColumns...).From("documents").Where(filter).OrderBy("title ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}
	rows, err := repo.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByName[DocumentDTO])
	if err != nil {
		return nil, fmt.Errorf("failed to map row to DocumentDTO: %w", err)
	}
	docs := make([]domain.Document, 0, len(dtos))
	for _, dto := range dtos {
		docs = append(docs, documentFromDTO(dto))
	}
	return docs, nil
}
