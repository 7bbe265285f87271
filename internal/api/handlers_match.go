// internal/api/handlers_match.go
package api

import (
	"net/http"
	"strconv"

	apperrors "sake-reco/internal/common/errors"
	buildsakeresponse "sake-reco/internal/workers/recommendation/build-sake-response"
	findsimilarsake "sake-reco/internal/workers/recommendation/find-similar-sake"
	matchsake "sake-reco/internal/workers/recommendation/match-sake"
	parsepreferences "sake-reco/internal/workers/recommendation/parse-preferences"

	"github.com/go-chi/chi/v5"
)

// match handles POST /api/v1/match?mode=filter|questionnaire. The body is the
// simple filter form or explicit lists. Mode defaults to filter, which
// returns every surviving item.
func (s *Server) match(w http.ResponseWriter, r *http.Request) {
	var form parsepreferences.Input
	if err := decodeBody(w, r, &form); err != nil {
		s.respondError(w, r, err)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = matchsake.ModeFilter
	}

	ctx := r.Context()
	parsed, err := s.handlers.Parse.Execute(ctx, &form)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	matched, err := s.handlers.Match.Execute(ctx, &matchsake.Input{Preferences: parsed.Preferences, Mode: mode})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp, err := s.handlers.Response.Execute(ctx, &buildsakeresponse.Input{
		RequestID:    chiRequestID(r),
		Results:      matched.Results,
		Preferences:  &parsed.Preferences,
		CatalogState: &matched.CatalogState,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// similar handles GET /api/v1/items/{id}/similar?limit=N.
func (s *Server) similar(w http.ResponseWriter, r *http.Request) {
	input := &findsimilarsake.Input{AnchorID: chi.URLParam(r, "id")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.respondError(w, r, apperrors.NewInvalidInputError("limit must be a non-negative integer"))
			return
		}
		input.Limit = limit
	}

	out, err := s.handlers.Similar.Execute(r.Context(), input)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}
