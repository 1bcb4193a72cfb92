package server

import (
	"net/http"
	"strings"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/Nascom/sulu/internal/search"
	"github.com/rs/zerolog"
)

type websiteSearchResponse struct {
	Query      string       `json:"query"`
	Expression string       `json:"expression"`
	Hits       []search.Hit `json:"hits"`
}

// websiteSearch serves GET /search?q=... for the published pages of a
// webspace. Webspace and locale fall back to the configured defaults.
func (env *Env) websiteSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := strings.TrimSpace(query.Get("q"))
	if q == "" {
		writeError(w, r, http.StatusBadRequest, domain.ApiErrorTypeMissingParam, "q: missing required parameter")
		return
	}
	webspace := query.Get("webspace")
	if webspace == "" {
		webspace = env.defaultWebspace
	}
	locale := query.Get("locale")
	if locale == "" {
		locale = env.defaultLocale
	}

	searchQuery := search.NewQuery(q, webspace, locale)
	zerolog.Ctx(r.Context()).Debug().
		Str("expression", searchQuery.Expression).
		Str("index", searchQuery.Index).
		Str("locale", searchQuery.Locale).
		Msg("executing website search")
	hits, err := env.search.Search(r.Context(), searchQuery)
	if err != nil {
		writeInternalError(w, r, err, "failed to execute search")
		return
	}
	env.metrics.searches.Inc()

	writeJSON(w, r, http.StatusOK, websiteSearchResponse{
		Query:      q,
		Expression: searchQuery.Expression,
		Hits:       hits,
	})
}
