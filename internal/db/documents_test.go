package db

import (
	"time"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("list queries", func() {
	var params domain.ListDocumentsParams

	BeforeEach(func() {
		params = domain.ListDocumentsParams{Webspace: "sulu_io", Locale: "en", Limit: domain.Unlimited}
	})

	toSQL := func() (string, []any) {
		filter, err := listFilter(params)
		Expect(err).NotTo(HaveOccurred())
		sql, args, err := psql.Select("id").From("documents").Where(filter).ToSql()
		Expect(err).NotTo(HaveOccurred())
		return sql, args
	}

	It("scopes lists to webspace and locale", func() {
		sql, args := toSQL()
		Expect(sql).To(ContainSubstring("locale = $1 AND webspace = $2"))
		Expect(sql).NotTo(ContainSubstring("ILIKE"))
		Expect(args).To(Equal([]any{"en", "sulu_io"}))
	})

	It("searches all searchable columns by default", func() {
		params.Search = "home"
		sql, args := toSQL()
		Expect(sql).To(And(
			ContainSubstring("template ILIKE $3"),
			ContainSubstring("title ILIKE $4"),
			ContainSubstring("resource_locator ILIKE $5"),
		))
		Expect(args[2:]).To(Equal([]any{"%home%", "%home%", "%home%"}))
	})

	It("searches the requested columns only", func() {
		params.Search = "home"
		params.SearchFields = []string{"url"}
		sql, _ := toSQL()
		Expect(sql).To(ContainSubstring("resource_locator ILIKE"))
		Expect(sql).NotTo(ContainSubstring("title ILIKE"))
	})

	It("escapes LIKE wildcards in search terms", func() {
		params.Search = `50%_off\`
		_, args := toSQL()
		Expect(args).To(ContainElement(`%50\%\_off\\%`))
	})

	It("rejects columns that cannot be searched", func() {
		params.Search = "home"
		params.SearchFields = []string{"created"}
		_, err := listFilter(params)
		Expect(err).To(MatchError(domain.ErrInvalidArgument))
	})

	It("orders by creation unless told otherwise", func() {
		Expect(orderBy(params)).To(Equal([]string{"created ASC", "id ASC"}))
	})

	It("orders by the column behind a field", func() {
		params.SortBy = "url"
		params.SortOrder = domain.SortOrderDesc
		Expect(orderBy(params)).To(Equal([]string{"resource_locator DESC", "id ASC"}))
	})

	It("rejects fields that cannot be sorted by", func() {
		params.SortBy = "id"
		_, err := orderBy(params)
		Expect(err).To(MatchError(domain.ErrInvalidArgument))
	})
})

var _ = Describe("DocumentDTO", func() {
	It("carries every document attribute", func() {
		doc := domain.Document{
			ID:              uuid.New(),
			Webspace:        "sulu_io",
			Locale:          "en",
			Title:           "Home",
			ResourceLocator: "/home",
			Template:        "default",
			Published:       true,
			Created:         time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Changed:         time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		}
		Expect(documentFromDTO(dtoFromDocument(doc))).To(Equal(doc))
	})

	It("selects every mapped column", func() {
		Expect(documentColumns).To(HaveLen(9))
	})
})
