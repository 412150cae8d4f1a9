// Package handler implements the HTTP surface of the field trip widget.
// HTML pages are rendered from embedded templates; the field-validation and
// health endpoints answer JSON. All handlers are methods on Server and are
// split into files by area (page.go, registration.go, health.go).
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
	"github.com/pkordes/fieldtrip-widget/internal/page"
	"github.com/pkordes/fieldtrip-widget/internal/registration"
	"github.com/pkordes/fieldtrip-widget/openapi"
)

// PageController is the loaded field trip page. *page.Controller satisfies it.
type PageController interface {
	State() page.State
	Retry() error
}

// RegistrationSessions keeps the open registration forms.
// *service.RegistrationService satisfies it.
type RegistrationSessions interface {
	Open(trip domain.FieldTrip, schoolID string) (uuid.UUID, *registration.Controller)
	Get(id uuid.UUID) (*registration.Controller, error)
	Close(id uuid.UUID) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	page     PageController
	sessions RegistrationSessions
	log      *slog.Logger
	loc      *time.Location
	views    *views
}

// NewServer constructs the Server. Dates are displayed in loc.
func NewServer(pg PageController, sessions RegistrationSessions, log *slog.Logger, loc *time.Location) *Server {
	if loc == nil {
		loc = time.UTC
	}
	return &Server{
		page:     pg,
		sessions: sessions,
		log:      log,
		loc:      loc,
		views:    parseViews(),
	}
}

// Routes returns the widget's routes. Cross-cutting middleware is applied by
// the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Get("/", s.GetPage)
	r.Post("/retry", s.RetryPage)

	r.Route("/registrations", func(r chi.Router) {
		r.Post("/", s.OpenRegistration)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetRegistration)
			r.Post("/fields/{field}", s.UpdateField)
			r.Post("/submit", s.SubmitRegistration)
			r.Post("/retry", s.RetryRegistration)
			r.Post("/close", s.CloseRegistration)
		})
	})
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapi.OpenAPI)
}
