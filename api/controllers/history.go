package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenbasket/farmmarket-backend/api/responses"
	"github.com/greenbasket/farmmarket-backend/api/validators"
	historysvc "github.com/greenbasket/farmmarket-backend/internal/history"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
)

type addSearchTermRequest struct {
	Term string `json:"term" validate:"required"`
}

// ListSearchHistory serves a user's recent search terms, newest first.
func ListSearchHistory(svc historysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		terms, err := svc.List(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, terms)
	}
}

// AddSearchTerm records a search term and returns the updated list.
func AddSearchTerm(svc historysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addSearchTermRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		terms, err := svc.Add(r.Context(), chi.URLParam(r, "userId"), payload.Term)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, terms)
	}
}

// ClearSearchHistory removes all of a user's search terms.
func ClearSearchHistory(svc historysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context(), chi.URLParam(r, "userId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "search history cleared"})
	}
}
