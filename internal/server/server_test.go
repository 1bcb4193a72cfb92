package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/Nascom/sulu/internal/memstore"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

var _ = Describe("Server", func() {
	var (
		store   *memstore.Store
		opts    Options
		handler *chi.Mux
		docs    []domain.Document
	)

	do := func(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, body)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	get := func(target string) *httptest.ResponseRecorder {
		return do(http.MethodGet, target, nil, "")
	}

	decodeList := func(rec *httptest.ResponseRecorder) domain.ListResponse {
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		var res domain.ListResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &res)).To(Succeed())
		return res
	}

	decodeError := func(rec *httptest.ResponseRecorder) domain.ApiError {
		var apiErr domain.ApiError
		Expect(json.Unmarshal(rec.Body.Bytes(), &apiErr)).To(Succeed())
		return apiErr
	}

	BeforeEach(func() {
		var err error
		store, err = memstore.New()
		Expect(err).NotTo(HaveOccurred())

		epoch := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		docs = nil
		for i, title := range []string{"Home", "About us", "Contact", "Blog", "Imprint"} {
			doc := domain.Document{
				ID:              uuid.New(),
				Webspace:        "sulu_io",
				Locale:          "en",
				Title:           title,
				ResourceLocator: "/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
				Template:        "default",
				Published:       title != "Imprint",
				Created:         epoch.Add(time.Duration(i) * time.Hour),
				Changed:         epoch.Add(time.Duration(i) * time.Hour),
			}
			Expect(store.InsertDocument(context.Background(), doc)).To(Succeed())
			docs = append(docs, doc)
		}

		opts = Options{
			Documents:       store,
			Logger:          zerolog.Nop(),
			DefaultWebspace: "sulu_io",
			DefaultLocale:   "en",
		}
	})

	JustBeforeEach(func() {
		handler = New(opts)
	})

	It("responds to health checks", func() {
		Expect(get("/health").Code).To(Equal(http.StatusOK))
	})

	Describe("GET /api/pages", func() {
		It("renders the first page with navigation links", func() {
			res := decodeList(get("/api/pages?webspace=sulu_io&locale=en&limit=2"))

			Expect(res.Rel).To(Equal("pages"))
			Expect(res.Items).To(HaveLen(2))
			Expect(res.Total).To(BeEquivalentTo(5))
			Expect(res.Page).To(Equal(1))
			Expect(res.Limit).To(Equal(domain.Limit(2)))
			Expect(res.Pages).To(Equal(3))
			Expect(res.Links).To(And(
				HaveKeyWithValue("self", domain.Link{Href: "/api/pages?limit=2&locale=en&page=1&webspace=sulu_io"}),
				HaveKeyWithValue("next", domain.Link{Href: "/api/pages?limit=2&locale=en&page=2&webspace=sulu_io"}),
				HaveKeyWithValue("last", domain.Link{Href: "/api/pages?limit=2&locale=en&page=3&webspace=sulu_io"}),
				HaveKeyWithValue("pagination", domain.Link{Href: "/api/pages?locale=en&webspace=sulu_io&page={page}&pageSize={pageSize}"}),
				Not(HaveKey("prev")),
			))
		})

		It("does not escape URI templates in the response body", func() {
			rec := get("/api/pages?webspace=sulu_io&locale=en")
			Expect(rec.Body.String()).To(ContainSubstring(`"href":"/api/pages?locale=en&webspace=sulu_io&sortBy={sortBy}&sortOrder={sortOrder}"`))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		})

		It("renders later pages with a link back", func() {
			res := decodeList(get("/api/pages?webspace=sulu_io&locale=en&limit=2&page=3"))
			Expect(res.Items).To(HaveLen(1))
			Expect(res.Links).To(HaveKeyWithValue("prev", domain.Link{Href: "/api/pages?limit=2&locale=en&page=2&webspace=sulu_io"}))
			Expect(res.Links).NotTo(HaveKey("next"))
		})

		It("accepts pageSize in place of limit", func() {
			res := decodeList(get("/api/pages?webspace=sulu_io&locale=en&pageSize=4"))
			Expect(res.Limit).To(Equal(domain.Limit(4)))
			Expect(res.Pages).To(Equal(2))
			Expect(res.Links["self"].Href).To(Equal("/api/pages?limit=4&locale=en&page=1&webspace=sulu_io"))
		})

		It("lists everything on a single page without a limit", func() {
			rec := get("/api/pages?webspace=sulu_io&locale=en")
			Expect(rec.Body.String()).To(ContainSubstring(`"limit":null`))
			res := decodeList(rec)
			Expect(res.Items).To(HaveLen(5))
			Expect(res.Pages).To(Equal(1))
			Expect(res.Links).NotTo(HaveKey("next"))
			Expect(res.Links["self"].Href).To(Equal("/api/pages?locale=en&page=1&webspace=sulu_io"))
		})

		It("ignores the requested page without a limit", func() {
			rec := get("/api/pages?webspace=sulu_io&locale=en&page=2")
			Expect(rec).To(HaveHTTPStatus(http.StatusOK))
			res := decodeList(rec)
			Expect(res.Page).To(Equal(1))
			Expect(res.Pages).To(Equal(1))
			Expect(res.Items).To(HaveLen(5))
			Expect(res.Links).NotTo(HaveKey("prev"))
			Expect(res.Links).NotTo(HaveKey("next"))
			Expect(res.Links["self"].Href).To(Equal("/api/pages?locale=en&page=1&webspace=sulu_io"))
		})

		It("exposes the default fields of every item", func() {
			res := decodeList(get("/api/pages?webspace=sulu_io&locale=en&limit=1"))
			Expect(res.Items[0].Entries).To(HaveLen(5))
			Expect(res.Items[0].Entries).To(And(
				HaveKeyWithValue("id", docs[0].ID.String()),
				HaveKeyWithValue("title", "Home"),
				HaveKeyWithValue("url", "/home"),
				HaveKey("published"),
				HaveKey("changed"),
			))
		})

		It("exposes selected fields only", func() {
			res := decodeList(get("/api/pages?webspace=sulu_io&locale=en&limit=1&fields=template"))
			Expect(res.Items[0].Entries).To(Equal(map[string]any{
				"id":       docs[0].ID.String(),
				"template": "default",
			}))
			Expect(res.Links["self"].Href).To(Equal("/api/pages?fields=template&limit=1&locale=en&page=1&webspace=sulu_io"))
		})

		It("leaves the current search fields out of the find template", func() {
			res := decodeList(get("/api/pages?webspace=sulu_io&locale=en&search=home&searchFields=title"))
			Expect(res.Links["find"].Href).To(Equal("/api/pages?locale=en&webspace=sulu_io&search={searchString}{&searchFields}"))
			Expect(res.Links["self"].Href).To(Equal("/api/pages?locale=en&page=1&search=home&searchFields=title&webspace=sulu_io"))
		})

		It("sorts and searches", func() {
			res := decodeList(get("/api/pages?webspace=sulu_io&locale=en&sortBy=title&sortOrder=desc&search=o"))
			var titles []any
			for _, item := range res.Items {
				titles = append(titles, item.Entries["title"])
			}
			Expect(titles).To(Equal([]any{"Home", "Contact", "Blog", "About us"}))
		})

		DescribeTable("rejects invalid parameters",
			func(query string, detail string) {
				rec := get("/api/pages?" + query)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				apiErr := decodeError(rec)
				Expect(apiErr.Type).To(Equal(domain.ApiErrorTypeBadParam))
				Expect(apiErr.Details).To(ContainElement(detail))
			},
			Entry("missing webspace", "locale=en", "webspace: missing required parameter"),
			Entry("missing locale", "webspace=sulu_io", "locale: missing required parameter"),
			Entry("page zero", "webspace=sulu_io&locale=en&page=0", "page: must be a positive integer"),
			Entry("non numeric limit", "webspace=sulu_io&locale=en&limit=all", "limit: must be a positive integer"),
			Entry("unknown field", "webspace=sulu_io&locale=en&fields=secret", `fields: unknown field "secret"`),
			Entry("unsortable field", "webspace=sulu_io&locale=en&sortBy=id", `sortBy: field "id" is not sortable`),
			Entry("unknown sort order", "webspace=sulu_io&locale=en&sortOrder=up", "sortOrder: must be one of asc, desc"),
			Entry("unsearchable field", "webspace=sulu_io&locale=en&search=x&searchFields=created", `searchFields: field "created" is not searchable`),
		)

		When("absolute links are configured", func() {
			BeforeEach(func() {
				opts.AbsoluteLinks = true
			})

			It("uses the host the request was sent to", func() {
				res := decodeList(get("http://cms.example.org/api/pages?webspace=sulu_io&locale=en"))
				Expect(res.Links["all"].Href).To(Equal("http://cms.example.org/api/pages?locale=en&webspace=sulu_io"))
			})

			It("prefers the configured base URL", func() {
				opts.BaseURL = &url.URL{Scheme: "https", Host: "sulu.example.org"}
				handler = New(opts)
				res := decodeList(get("http://cms.example.org/api/pages?webspace=sulu_io&locale=en"))
				Expect(res.Links["all"].Href).To(Equal("https://sulu.example.org/api/pages?locale=en&webspace=sulu_io"))
			})
		})
	})

	Describe("GET /api/pages/fields", func() {
		It("describes the list columns", func() {
			rec := get("/api/pages/fields")
			Expect(rec.Code).To(Equal(http.StatusOK))
			var fields domain.FieldDescriptors
			Expect(json.Unmarshal(rec.Body.Bytes(), &fields)).To(Succeed())
			Expect(fields).To(Equal(domain.DocumentFields))
		})
	})

	Describe("GET /api/pages/{id}", func() {
		It("returns the document", func() {
			rec := get("/api/pages/" + docs[1].ID.String())
			Expect(rec.Code).To(Equal(http.StatusOK))
			var doc domain.Document
			Expect(json.Unmarshal(rec.Body.Bytes(), &doc)).To(Succeed())
			Expect(doc.ID).To(Equal(docs[1].ID))
			Expect(doc.Title).To(Equal("About us"))
		})

		It("reports unknown documents", func() {
			rec := get("/api/pages/" + uuid.NewString())
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(decodeError(rec).Type).To(Equal(domain.ApiErrorTypeNotFound))
		})

		It("reports malformed ids as unknown", func() {
			Expect(get("/api/pages/not-a-uuid").Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /api/pages", func() {
		post := func(body string) *httptest.ResponseRecorder {
			return do(http.MethodPost, "/api/pages", strings.NewReader(body), "application/json")
		}

		It("creates documents", func() {
			id := uuid.New()
			rec := post(fmt.Sprintf(`{"id": %q, "webspace": "sulu_io", "locale": "en", "title": "News", "url": "/news", "published": true}`, id))
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			Expect(rec.Header().Get("Location")).To(Equal("/api/pages/" + id.String()))

			doc, err := store.FetchDocument(context.Background(), domain.FetchDocumentParams{ID: id})
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Template).To(Equal("default"))
			Expect(doc.Published).To(BeTrue())
		})

		It("assigns an id when none is given", func() {
			rec := post(`{"webspace": "sulu_io", "locale": "en", "title": "News", "url": "/news"}`)
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			Expect(rec.Header().Get("Location")).To(MatchRegexp(`^/api/pages/[0-9a-f-]{36}$`))
		})

		It("rejects duplicates", func() {
			rec := post(fmt.Sprintf(`{"id": %q, "webspace": "sulu_io", "locale": "en", "title": "Home", "url": "/another-home"}`, docs[0].ID))
			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(decodeError(rec).Type).To(Equal(domain.ApiErrorTypeAlreadyRegistered))
		})

		It("rejects invalid documents", func() {
			rec := post(`{"webspace": "sulu_io", "locale": "en", "url": "news"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Details).To(ConsistOf("title: must not be empty", "url: must be an absolute path"))
		})

		It("rejects malformed JSON", func() {
			rec := post(`{"title": `)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Type).To(Equal(domain.ApiErrorTypeBadParam))
		})

		It("only accepts JSON", func() {
			rec := do(http.MethodPost, "/api/pages", strings.NewReader("title=News"), "application/x-www-form-urlencoded")
			Expect(rec.Code).To(Equal(http.StatusUnsupportedMediaType))
		})
	})

	Describe("GET /search", func() {
		It("finds published pages of the default webspace", func() {
			rec := get("/search?q=home")
			Expect(rec.Code).To(Equal(http.StatusOK))
			var res websiteSearchResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &res)).To(Succeed())
			Expect(res.Query).To(Equal("home"))
			Expect(res.Expression).To(Equal(`+("home" OR "home*" OR "home~") `))
			Expect(res.Hits).To(HaveLen(1))
			Expect(res.Hits[0].URL).To(Equal("/home"))
		})

		It("does not find unpublished pages", func() {
			rec := get("/search?q=imprint")
			var res websiteSearchResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &res)).To(Succeed())
			Expect(res.Hits).To(BeEmpty())
		})

		It("requires a query", func() {
			rec := get("/search?q=%20")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeError(rec).Type).To(Equal(domain.ApiErrorTypeMissingParam))
		})
	})

	It("exports metrics about rendered lists", func() {
		get("/api/pages?webspace=sulu_io&locale=en")
		get("/search?q=blog")
		rec := get("/metrics")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(And(
			ContainSubstring(`sulu_lists_rendered_total{rel="pages"} 1`),
			ContainSubstring(`sulu_website_searches_total 1`),
		))
	})
})
