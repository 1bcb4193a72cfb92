package server

import (
	"encoding/json"
	"net/http"

	"github.com/Nascom/sulu/internal/domain"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"
)

// writeJSON encodes without HTML escaping so '&', '<' and '>' in hrefs and URI
// templates stay literal. Use it for anything holding links.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, errType domain.ApiErrorType, details ...string) {
	render.Status(r, status)
	render.JSON(w, r, domain.ApiError{Type: errType, Details: details})
}

func writeInternalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	writeError(w, r, http.StatusInternalServerError, domain.ApiErrorTypeUnknown, "An unknown error has occurred")
}
