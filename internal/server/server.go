package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/Nascom/sulu/internal/routing"
	"github.com/Nascom/sulu/internal/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	RouteListPages     = "get_pages"
	RoutePageFields    = "get_page_fields"
	RouteGetPage       = "get_page"
	RouteCreatePage    = "post_pages"
	RouteWebsiteSearch = "website_search"
)

type Options struct {
	Documents domain.DocumentRepository
	Search    search.Manager
	Logger    zerolog.Logger
	// BaseURL overrides the scheme and host taken from incoming requests when
	// building absolute links.
	BaseURL         *url.URL
	AbsoluteLinks   bool
	DefaultWebspace string
	DefaultLocale   string
	Timeout         time.Duration
	Registry        *prometheus.Registry
}

type Env struct {
	documents       domain.DocumentRepository
	search          search.Manager
	routes          *routing.Router
	baseURL         *url.URL
	absoluteLinks   bool
	defaultWebspace string
	defaultLocale   string
	metrics         *metrics
}

// routesFor returns the link generator for r, rooted at the configured base
// URL or at the host the request was sent to.
func (env *Env) routesFor(r *http.Request) routing.Router {
	base := env.baseURL
	if base == nil {
		base = &url.URL{Scheme: r.URL.Scheme, Host: r.URL.Host}
	}
	return env.routes.WithBaseURL(domain.URL{URL: base})
}

func addHostToRequestURL(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Host = r.Host
		if r.TLS != nil {
			r.URL.Scheme = "https"
		} else {
			r.URL.Scheme = "http"
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			reqLogger := logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
			r = r.WithContext(reqLogger.WithContext(r.Context()))
			defer func() {
				reqLogger.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Msg("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func New(opts Options) *chi.Mux {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Search == nil {
		opts.Search = search.RepositoryManager{Documents: opts.Documents}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(opts.Logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/health"))
	router.Use(middleware.Timeout(opts.Timeout))
	router.Use(addHostToRequestURL)

	env := &Env{
		documents:       opts.Documents,
		search:          opts.Search,
		routes:          routing.New(domain.URL{URL: opts.BaseURL}),
		baseURL:         opts.BaseURL,
		absoluteLinks:   opts.AbsoluteLinks,
		defaultWebspace: opts.DefaultWebspace,
		defaultLocale:   opts.DefaultLocale,
		metrics:         newMetrics(opts.Registry),
	}

	router.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	env.routes.Method(router, http.MethodGet, RouteListPages, "/api/pages", env.listDocuments)
	env.routes.Method(router, http.MethodGet, RoutePageFields, "/api/pages/fields", env.documentFields)
	env.routes.Method(router, http.MethodGet, RouteGetPage, "/api/pages/{id}", env.getDocument)
	router.With(middleware.AllowContentType("application/json")).
		Method(http.MethodPost, "/api/pages", http.HandlerFunc(env.createDocument))
	env.routes.Register(RouteCreatePage, "/api/pages")
	env.routes.Method(router, http.MethodGet, RouteWebsiteSearch, "/search", env.websiteSearch)

	return router
}
