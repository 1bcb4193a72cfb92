// Package routing keeps a table of named routes so handlers can generate
// links without hard coding paths.
package routing

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/go-chi/chi/v5"
)

var (
	ErrUnknownRoute     = errors.New("unknown route")
	ErrMissingParameter = errors.New("missing route parameter")
	ErrNoBaseURL        = errors.New("no base URL to build absolute link")
)

type segment struct {
	literal string
	param   string
}

type route struct {
	pattern  string
	segments []segment
}

func parsePattern(pattern string) route {
	r := route{pattern: pattern}
	for _, part := range strings.Split(strings.Trim(pattern, "/"), "/") {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := strings.TrimSuffix(strings.TrimPrefix(part, "{"), "}")
			// chi allows "{name:regexp}"
			if i := strings.Index(name, ":"); i >= 0 {
				name = name[:i]
			}
			r.segments = append(r.segments, segment{param: name})
			continue
		}
		r.segments = append(r.segments, segment{literal: part})
	}
	return r
}

// Router implements domain.URIGenerator. Routes are registered during start up
// and only read afterwards.
type Router struct {
	routes map[string]route
	base   domain.URL
}

var _ domain.URIGenerator = Router{}

func New(base domain.URL) *Router {
	return &Router{routes: make(map[string]route), base: base}
}

func (router *Router) Register(name string, pattern string) {
	router.routes[name] = parsePattern(pattern)
}

// Method registers the route under name and mounts handler on mux.
func (router *Router) Method(mux chi.Router, method string, name string, pattern string, handler http.HandlerFunc) {
	router.Register(name, pattern)
	mux.Method(method, pattern, handler)
}

func (router *Router) Pattern(name string) (string, bool) {
	r, ok := router.routes[name]
	return r.pattern, ok
}

// WithBaseURL returns a router sharing the route table but generating links
// relative to base.
func (router Router) WithBaseURL(base domain.URL) Router {
	router.base = base
	return router
}

func (router Router) BaseURL() domain.URL {
	return router.base
}

func (router Router) Generate(name string, params map[string]any, absolute bool) (string, error) {
	r, ok := router.routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}

	used := make(map[string]bool)
	var path strings.Builder
	if router.base.URL != nil {
		path.WriteString(strings.TrimSuffix(router.base.Path, "/"))
	}
	for _, seg := range r.segments {
		path.WriteString("/")
		if seg.param == "" {
			path.WriteString(seg.literal)
			continue
		}
		value, ok := params[seg.param]
		if !ok || value == nil {
			return "", fmt.Errorf("%w: %q for route %s", ErrMissingParameter, seg.param, name)
		}
		str, err := domain.ParameterString(value)
		if err != nil {
			return "", err
		}
		path.WriteString(url.PathEscape(str))
		used[seg.param] = true
	}
	if path.Len() == 0 {
		path.WriteString("/")
	}

	var placeholders []string
	query := make(map[string]string)
	for key, value := range params {
		if used[key] || value == nil {
			continue
		}
		if p, ok := value.(domain.Placeholder); ok {
			placeholders = append(placeholders, key+"="+string(p))
			continue
		}
		str, err := domain.ParameterString(value)
		if err != nil {
			return "", err
		}
		query[key] = str
	}
	sort.Strings(placeholders)

	rawQuery := domain.URL{URL: &url.URL{}}.ModifyQuery(func(values *url.Values) {
		for key, value := range query {
			values.Set(key, value)
		}
	}).RawQuery
	if len(placeholders) > 0 {
		if rawQuery != "" {
			rawQuery += "&"
		}
		rawQuery += strings.Join(placeholders, "&")
	}
	href := path.String()
	if rawQuery != "" {
		href += "?" + rawQuery
	}

	if !absolute {
		return href, nil
	}
	origin := router.base.Origin()
	if origin == "" {
		return "", fmt.Errorf("%w: route %s", ErrNoBaseURL, name)
	}
	return origin + href, nil
}
