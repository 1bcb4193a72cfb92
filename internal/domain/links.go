package domain

import (
	"fmt"
	"strconv"
)

// Placeholder is a URI template expression such as "{fieldsList}". URI
// generators emit it as is so clients can substitute it later.
type Placeholder string

type URIGenerator interface {
	Generate(route string, params map[string]any, absolute bool) (string, error)
}

type LinkTemplate struct {
	Route      string
	Parameters map[string]any
	Absolute   bool
}

// With returns a copy of the template whose parameters are overridden by
// overrides. A nil override removes the parameter.
func (t LinkTemplate) With(overrides map[string]any) LinkTemplate {
	params := make(map[string]any, len(t.Parameters)+len(overrides))
	for key, value := range t.Parameters {
		params[key] = value
	}
	for key, value := range overrides {
		if value == nil {
			delete(params, key)
			continue
		}
		params[key] = value
	}
	return LinkTemplate{Route: t.Route, Parameters: params, Absolute: t.Absolute}
}

func (t LinkTemplate) Resolve(gen URIGenerator) (Link, error) {
	href, err := gen.Generate(t.Route, t.Parameters, t.Absolute)
	if err != nil {
		return Link{}, err
	}
	return Link{Href: href}, nil
}

type Link struct {
	Href string `json:"href"`
}

type Links map[string]Link

const (
	RelSelf       = "self"
	RelFirst      = "first"
	RelLast       = "last"
	RelNext       = "next"
	RelPrev       = "prev"
	RelAll        = "all"
	RelFilter     = "filter"
	RelFind       = "find"
	RelPagination = "pagination"
	RelSortable   = "sortable"
)

const (
	PageParameter         = "page"
	LimitParameter        = "limit"
	PageSizeParameter     = "pageSize"
	FieldsParameter       = "fields"
	SearchParameter       = "search"
	SearchFieldsParameter = "searchFields"
	SortByParameter       = "sortBy"
	SortOrderParameter    = "sortOrder"
)

// ParameterString renders a link parameter for use in a URI. Only strings,
// integers and placeholders are supported.
func ParameterString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case Placeholder:
		return string(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case Limit:
		return strconv.Itoa(int(v)), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: unsupported link parameter type %T", ErrInvalidArgument, value)
	}
}
