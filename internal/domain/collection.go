package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PagedCollection is one page of a list resource together with everything
// needed to render its navigation links. It is built per response and never
// modified afterwards.
type PagedCollection struct {
	items       []Record
	rel         string
	template    LinkTemplate
	page        int
	limit       Limit
	total       int64
	totalPages  int
	descriptors FieldDescriptors
}

func NewPagedCollection(
	items []Record,
	rel string,
	template LinkTemplate,
	page int,
	limit Limit,
	total int64,
	descriptors FieldDescriptors,
) (*PagedCollection, error) {
	if err := ValidatePage(page, limit, total); err != nil {
		return nil, err
	}
	if rel == "" {
		return nil, fmt.Errorf("%w: relation name must not be empty", ErrInvalidArgument)
	}
	if err := descriptors.Validate(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Record{}
	}
	// An unlimited collection is a single page.
	if limit.IsUnlimited() {
		page = 1
	}
	return &PagedCollection{
		items:       items,
		rel:         rel,
		template:    template.With(nil),
		page:        page,
		limit:       limit,
		total:       total,
		totalPages:  TotalPages(total, limit),
		descriptors: descriptors,
	}, nil
}

func (c *PagedCollection) Items() []Record                    { return c.items }
func (c *PagedCollection) Rel() string                        { return c.rel }
func (c *PagedCollection) Template() LinkTemplate             { return c.template }
func (c *PagedCollection) Page() int                          { return c.page }
func (c *PagedCollection) Limit() Limit                       { return c.limit }
func (c *PagedCollection) Total() int64                       { return c.total }
func (c *PagedCollection) TotalPages() int                    { return c.totalPages }
func (c *PagedCollection) FieldDescriptors() FieldDescriptors { return c.descriptors }

func (c *PagedCollection) HasNext() bool {
	return c.page < c.totalPages
}

func (c *PagedCollection) HasPrev() bool {
	return c.page > 1
}

func (c *PagedCollection) pageParameters(page int) map[string]any {
	params := map[string]any{PageParameter: page}
	if c.limit.IsUnlimited() {
		params[LimitParameter] = nil
	} else {
		params[LimitParameter] = int(c.limit)
	}
	return params
}

type relation struct {
	name      string
	overrides func(c *PagedCollection) map[string]any
	// present reports whether the link applies to the collection at all.
	present func(c *PagedCollection) bool
}

func always(*PagedCollection) bool { return true }

var listRelations = []relation{
	{RelSelf, func(c *PagedCollection) map[string]any { return c.pageParameters(c.page) }, always},
	{RelFirst, func(c *PagedCollection) map[string]any { return c.pageParameters(1) }, always},
	{RelLast, func(c *PagedCollection) map[string]any {
		last := c.totalPages
		if last < 1 {
			last = 1
		}
		return c.pageParameters(last)
	}, always},
	{RelNext, func(c *PagedCollection) map[string]any { return c.pageParameters(c.page + 1) }, (*PagedCollection).HasNext},
	{RelPrev, func(c *PagedCollection) map[string]any { return c.pageParameters(c.page - 1) }, (*PagedCollection).HasPrev},
	{RelAll, func(*PagedCollection) map[string]any {
		return map[string]any{PageParameter: nil, LimitParameter: nil}
	}, always},
	{RelFilter, func(*PagedCollection) map[string]any {
		return map[string]any{FieldsParameter: Placeholder("{fieldsList}")}
	}, always},
	{RelFind, func(*PagedCollection) map[string]any {
		return map[string]any{
			SearchParameter:       Placeholder("{searchString}{&searchFields}"),
			SearchFieldsParameter: nil,
		}
	}, always},
	{RelPagination, func(*PagedCollection) map[string]any {
		return map[string]any{
			PageParameter:     Placeholder("{page}"),
			PageSizeParameter: Placeholder("{pageSize}"),
			LimitParameter:    nil,
		}
	}, always},
	{RelSortable, func(*PagedCollection) map[string]any {
		return map[string]any{
			SortByParameter:    Placeholder("{sortBy}"),
			SortOrderParameter: Placeholder("{sortOrder}"),
		}
	}, always},
}

// Links resolves every relation that applies to the collection. Errors from
// gen are returned unchanged, so errors.Is matches the generator's sentinels.
func (c *PagedCollection) Links(gen URIGenerator) (Links, error) {
	links := make(Links, len(listRelations))
	for _, rel := range listRelations {
		if !rel.present(c) {
			continue
		}
		link, err := c.template.With(rel.overrides(c)).Resolve(gen)
		if err != nil {
			return nil, err
		}
		links[rel.name] = link
	}
	return links, nil
}

// Render produces the serializable form of the collection.
func (c *PagedCollection) Render(gen URIGenerator) (ListResponse, error) {
	links, err := c.Links(gen)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{
		Rel:   c.rel,
		Items: c.items,
		Links: links,
		Total: c.total,
		Page:  c.page,
		Limit: c.limit,
		Pages: c.totalPages,
	}, nil
}

type ListResponse struct {
	Rel   string
	Items []Record
	Links Links
	Total int64
	Page  int
	Limit Limit
	Pages int
}

func (res ListResponse) MarshalJSON() ([]byte, error) {
	items := res.Items
	if items == nil {
		items = []Record{}
	}
	return marshalUnescaped(struct {
		Embedded map[string][]Record `json:"_embedded"`
		Links    Links               `json:"_links"`
		Total    int64               `json:"total"`
		Page     int                 `json:"page"`
		Limit    Limit               `json:"limit"`
		Pages    int                 `json:"pages"`
	}{
		Embedded: map[string][]Record{res.Rel: items},
		Links:    res.Links,
		Total:    res.Total,
		Page:     res.Page,
		Limit:    res.Limit,
		Pages:    res.Pages,
	})
}

// marshalUnescaped is json.Marshal without HTML escaping. The output of a
// Marshaler is never unescaped by the caller's encoder, so hrefs must be
// written literally here.
func marshalUnescaped(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (res *ListResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Embedded map[string][]Record `json:"_embedded"`
		Links    Links               `json:"_links"`
		Total    int64               `json:"total"`
		Page     int                 `json:"page"`
		Limit    *int                `json:"limit"`
		Pages    int                 `json:"pages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*res = ListResponse{Links: raw.Links, Total: raw.Total, Page: raw.Page, Pages: raw.Pages, Limit: Unlimited}
	if raw.Limit != nil {
		res.Limit = Limit(*raw.Limit)
	}
	for rel, items := range raw.Embedded {
		res.Rel = rel
		res.Items = items
	}
	return nil
}
