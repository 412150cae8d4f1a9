package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
	"github.com/pkordes/fieldtrip-widget/internal/registration"
)

// Events accepted by UpdateField.
const (
	eventChange = "change"
	eventBlur   = "blur"
)

// FieldUpdateRequest is the body of POST /registrations/{id}/fields/{field}.
type FieldUpdateRequest struct {
	Value string `json:"value"`
	Event string `json:"event"`
}

// FieldUpdateResponse carries every error currently recorded on the form.
type FieldUpdateResponse struct {
	Errors map[string]string `json:"errors"`
	Status string            `json:"status"`
}

// submittedFields are read from the submit form, in form order.
var submittedFields = append(append([]domain.Field{}, domain.ValidatedFields...), domain.FieldSchoolID)

// OpenRegistration handles POST /registrations.
func (s *Server) OpenRegistration(w http.ResponseWriter, r *http.Request) {
	st := s.page.State()
	if st.Trip == nil {
		s.respondError(w, r, fmt.Errorf("handler.OpenRegistration: %w", domain.ErrNoFieldTrip))
		return
	}
	if err := r.ParseForm(); err != nil {
		requestError(w, r, "malformed form body")
		return
	}

	id, _ := s.sessions.Open(*st.Trip, r.PostForm.Get(domain.FieldSchoolID.String()))
	http.Redirect(w, r, registrationPath(id), http.StatusSeeOther)
}

// GetRegistration handles GET /registrations/{id}.
func (s *Server) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, ctrl, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderRegistration(w, r, http.StatusOK, id, ctrl.Snapshot())
}

// UpdateField handles POST /registrations/{id}/fields/{field}.
// A "change" event stores the value; a "blur" event stores it and validates it.
func (s *Server) UpdateField(w http.ResponseWriter, r *http.Request) {
	_, ctrl, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var body FieldUpdateRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		requestError(w, r, "request body must be JSON")
		return
	}
	if body.Event == "" {
		body.Event = eventChange
	}
	if body.Event != eventChange && body.Event != eventBlur {
		requestError(w, r, `event must be "change" or "blur"`)
		return
	}

	name := chi.URLParam(r, "field")
	if err := ctrl.Edit(name, body.Value); err != nil {
		s.respondError(w, r, err)
		return
	}
	if body.Event == eventBlur {
		if err := ctrl.Blur(name); err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	snap := ctrl.Snapshot()
	render.JSON(w, r, FieldUpdateResponse{Errors: snap.Errors.Map(), Status: snap.Status.String()})
}

// SubmitRegistration handles POST /registrations/{id}/submit.
// Posted field values are applied before the form is validated and sent.
// An invalid form is re-rendered with 422 and nothing reaches the backend.
func (s *Server) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	id, ctrl, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		requestError(w, r, "malformed form body")
		return
	}

	for _, f := range submittedFields {
		values, ok := r.PostForm[f.String()]
		if !ok || len(values) == 0 {
			continue
		}
		if err := ctrl.Edit(f.String(), values[0]); err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	// The payment must complete even if the browser goes away mid-request.
	result, err := ctrl.Submit(context.WithoutCancel(r.Context()))
	if errors.Is(err, domain.ErrValidation) {
		s.renderRegistration(w, r, http.StatusUnprocessableEntity, id, ctrl.Snapshot())
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "payment submitted", "session_id", id, "outcome", result.Kind.String())
	http.Redirect(w, r, registrationPath(id), http.StatusSeeOther)
}

// RetryRegistration handles POST /registrations/{id}/retry.
func (s *Server) RetryRegistration(w http.ResponseWriter, r *http.Request) {
	id, ctrl, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := ctrl.Retry(); err != nil {
		s.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, registrationPath(id), http.StatusSeeOther)
}

// CloseRegistration handles POST /registrations/{id}/close.
func (s *Server) CloseRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.sessions.Close(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderRegistration(w http.ResponseWriter, r *http.Request, status int, id uuid.UUID, snap registration.Snapshot) {
	s.writeHTML(w, r, status, s.views.registration, layoutData{
		Title:   "Register for Field Trip",
		Refresh: snap.Status == registration.StatusSubmitting,
		Body:    newRegistrationView(registrationPath(id), snap, s.loc),
	})
}

func (s *Server) session(r *http.Request) (uuid.UUID, *registration.Controller, error) {
	id, err := sessionID(r)
	if err != nil {
		return uuid.Nil, nil, err
	}
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, ctrl, nil
}

// sessionID parses the {id} path parameter. A malformed id cannot name a
// session, so it is reported as not found.
func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("handler.sessionID: %q: %w", chi.URLParam(r, "id"), domain.ErrNotFound)
	}
	return id, nil
}

func registrationPath(id uuid.UUID) string {
	return "/registrations/" + id.String()
}
