package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const pagesRel = "pages"

func (env *Env) listDocuments(w http.ResponseWriter, r *http.Request) {
	descriptors := domain.DocumentFields
	params, errs := parseListDocumentsParams(r, descriptors)
	if len(errs) > 0 {
		writeError(w, r, http.StatusBadRequest, domain.ApiErrorTypeBadParam, errs...)
		return
	}

	ctx := r.Context()
	page, err := env.documents.ListDocuments(ctx, domain.ListDocumentsParams{
		Webspace:     params.Webspace,
		Locale:       params.Locale,
		Offset:       params.Limit.Offset(params.Page),
		Limit:        params.Limit,
		SortBy:       params.SortBy,
		SortOrder:    params.SortOrder,
		Search:       params.Search,
		SearchFields: params.SearchFields,
	})
	if errors.Is(err, domain.ErrInvalidArgument) {
		writeError(w, r, http.StatusBadRequest, domain.ApiErrorTypeBadParam, err.Error())
		return
	}
	if err != nil {
		writeInternalError(w, r, err, "failed to list documents")
		return
	}

	records := make([]domain.Record, 0, len(page.Items))
	for _, doc := range page.Items {
		records = append(records, doc.Record())
	}

	collection, err := domain.NewPagedCollection(
		domain.ExposeAll(records, descriptors, params.Fields),
		pagesRel,
		domain.LinkTemplate{
			Route:      RouteListPages,
			Parameters: linkParameters(r),
			Absolute:   env.absoluteLinks,
		},
		page.Number,
		page.Size,
		page.Total,
		descriptors,
	)
	if err != nil {
		writeInternalError(w, r, err, "failed to build list representation")
		return
	}
	response, err := collection.Render(env.routesFor(r))
	if err != nil {
		writeInternalError(w, r, err, "failed to generate list links")
		return
	}

	env.metrics.observeList(collection)
	zerolog.Ctx(ctx).Debug().
		Int("page", collection.Page()).
		Int("pages", collection.TotalPages()).
		Int64("total", collection.Total()).
		Msg("rendered document list")
	writeJSON(w, r, http.StatusOK, response)
}

func (env *Env) documentFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, domain.DocumentFields)
}

func (env *Env) getDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, domain.ApiErrorTypeNotFound)
		return
	}

	doc, err := env.documents.FetchDocument(r.Context(), domain.FetchDocumentParams{ID: id})
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, domain.ApiErrorTypeNotFound)
		return
	}
	if err != nil {
		writeInternalError(w, r, err, "failed to fetch document")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, doc)
}

type createDocumentRequest struct {
	ID        *uuid.UUID `json:"id"`
	Webspace  string     `json:"webspace"`
	Locale    string     `json:"locale"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Template  string     `json:"template"`
	Published bool       `json:"published"`
}

func (req createDocumentRequest) document(now time.Time) domain.Document {
	doc := domain.Document{
		Webspace:        req.Webspace,
		Locale:          req.Locale,
		Title:           req.Title,
		ResourceLocator: req.URL,
		Template:        req.Template,
		Published:       req.Published,
		Created:         now,
		Changed:         now,
	}
	if req.ID != nil {
		doc.ID = *req.ID
	} else {
		doc.ID = uuid.New()
	}
	if doc.Template == "" {
		doc.Template = "default"
	}
	return doc
}

func (env *Env) createDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		zerolog.Ctx(r.Context()).Info().Err(err).Msg("malformed document payload")
		writeError(w, r, http.StatusBadRequest, domain.ApiErrorTypeBadParam, "document payload is not valid JSON")
		return
	}
	defer r.Body.Close()

	doc := req.document(time.Now().UTC().Truncate(time.Microsecond))
	if errs := domain.ValidateDocument(doc); len(errs) > 0 {
		writeError(w, r, http.StatusBadRequest, domain.ApiErrorTypeBadParam, errs...)
		return
	}

	err = env.documents.InsertDocument(r.Context(), doc)
	if errors.Is(err, domain.ErrConflict) {
		writeError(w, r, http.StatusConflict, domain.ApiErrorTypeAlreadyRegistered)
		return
	}
	if err != nil {
		writeInternalError(w, r, err, "failed to insert document")
		return
	}

	location, err := env.routesFor(r).Generate(RouteGetPage, map[string]any{"id": doc.ID.String()}, env.absoluteLinks)
	if err != nil {
		writeInternalError(w, r, err, "failed to generate document location")
		return
	}
	w.Header().Set("Location", location)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, doc)
}
