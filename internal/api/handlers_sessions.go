// internal/api/handlers_sessions.go
package api

import (
	"net/http"

	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/questionnaire"
	buildsakeresponse "sake-reco/internal/workers/recommendation/build-sake-response"

	"github.com/go-chi/chi/v5"
)

// actionsRequest accepts one action or a batch applied in order.
type actionsRequest struct {
	questionnaire.Action
	Actions []questionnaire.Action `json:"actions,omitempty"`
}

func (req actionsRequest) list() []questionnaire.Action {
	if len(req.Actions) > 0 {
		return req.Actions
	}
	if req.Type == "" {
		return nil
	}
	return []questionnaire.Action{req.Action}
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusCreated, s.decorate(s.sessions.Create()))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.With(chi.URLParam(r, "id"), nil)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.decorate(view))
}

// applyActions handles POST /api/v1/sessions/{id}/actions. Actions are applied
// in order; the first rejected one stops the batch and earlier ones stay
// applied.
func (s *Server) applyActions(w http.ResponseWriter, r *http.Request) {
	var req actionsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	actions := req.list()
	if len(actions) == 0 {
		s.respondError(w, r, apperrors.NewInvalidInputError("no action given"))
		return
	}

	view, err := s.sessions.With(chi.URLParam(r, "id"), func(session *questionnaire.Session) error {
		for _, a := range actions {
			step := session.Step()
			if err := questionnaire.Apply(session, a); err != nil {
				return questionnaire.AsStandardError(err, step, a)
			}
		}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.decorate(view))
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.With(chi.URLParam(r, "id"), func(session *questionnaire.Session) error {
		session.Reset()
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.decorate(view))
}

// rematchSession re-runs matching for a completed session against the
// current catalog.
func (s *Server) rematchSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.With(chi.URLParam(r, "id"), func(session *questionnaire.Session) error {
		step := session.Step()
		_, err := session.Rematch()
		return questionnaire.AsStandardError(err, step, questionnaire.Action{Type: "rematch"})
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.decorate(view))
}

// decorate sets the empty-result message of a completed session from the
// current catalog state.
func (s *Server) decorate(view SessionView) SessionView {
	if view.Completed && len(view.Results) == 0 {
		state := s.catalog.State()
		view.Message = buildsakeresponse.EmptyMessage(state.Loading, state.Error)
	}
	return view
}
