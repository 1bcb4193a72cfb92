package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Nascom/sulu/internal/domain"
)

type ListDocumentsParams struct {
	Webspace     string
	Locale       string
	Page         int
	Limit        domain.Limit
	Fields       domain.Set[string]
	SortBy       string
	SortOrder    domain.SortOrder
	Search       string
	SearchFields domain.Set[string]
}

// Parameters that select the page itself; everything else is carried over into links.
var pagingParameters = map[string]bool{
	domain.PageParameter:     true,
	domain.LimitParameter:    true,
	domain.PageSizeParameter: true,
}

func parsePositiveInt(query url.Values, key string) (value int, present bool, err error) {
	raw := query.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, true, fmt.Errorf("%s: must be a positive integer", key)
	}
	return value, true, nil
}

func parseListDocumentsParams(r *http.Request, descriptors domain.FieldDescriptors) (params ListDocumentsParams, errs []string) {
	query := r.URL.Query()

	params.Webspace = query.Get("webspace")
	if params.Webspace == "" {
		errs = append(errs, "webspace: missing required parameter")
	}
	params.Locale = query.Get("locale")
	if params.Locale == "" {
		errs = append(errs, "locale: missing required parameter")
	}

	params.Page = 1
	if page, present, err := parsePositiveInt(query, domain.PageParameter); err != nil {
		errs = append(errs, err.Error())
	} else if present {
		params.Page = page
	}

	params.Limit = domain.Unlimited
	limitKey := domain.LimitParameter
	if query.Get(limitKey) == "" {
		limitKey = domain.PageSizeParameter
	}
	if limit, present, err := parsePositiveInt(query, limitKey); err != nil {
		errs = append(errs, err.Error())
	} else if present {
		params.Limit = domain.Limit(limit)
	}

	params.Fields = domain.ParseSet(query.Get(domain.FieldsParameter))
	for _, field := range params.Fields {
		if _, ok := descriptors.Lookup(field); !ok {
			errs = append(errs, fmt.Sprintf("fields: unknown field %q", field))
		}
	}

	params.SortBy = query.Get(domain.SortByParameter)
	if params.SortBy != "" && !descriptors.Sortable(params.SortBy) {
		errs = append(errs, fmt.Sprintf("sortBy: field %q is not sortable", params.SortBy))
	}
	if sortOrder := query.Get(domain.SortOrderParameter); sortOrder != "" {
		var err error
		params.SortOrder, err = domain.ParseSortOrder(sortOrder)
		if err != nil {
			errs = append(errs, "sortOrder: must be one of asc, desc")
		}
	}

	params.Search = query.Get(domain.SearchParameter)
	params.SearchFields = domain.ParseSet(query.Get(domain.SearchFieldsParameter))
	for _, field := range params.SearchFields {
		if !descriptors.Searchable(field) {
			errs = append(errs, fmt.Sprintf("searchFields: field %q is not searchable", field))
		}
	}

	return
}

// linkParameters returns the query of r without the paging parameters, the
// base every list link is derived from.
func linkParameters(r *http.Request) map[string]any {
	params := make(map[string]any)
	for key, values := range r.URL.Query() {
		if pagingParameters[key] || len(values) == 0 {
			continue
		}
		params[key] = values[0]
	}
	return params
}
