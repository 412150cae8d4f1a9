// Package service holds the widget's stateful application services.
package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
	"github.com/pkordes/fieldtrip-widget/internal/registration"
)

// RegistrationService keeps the open registration forms, one controller per
// session id. Sessions live in memory only and are lost on restart.
type RegistrationService struct {
	submitter registration.Submitter
	ttl       time.Duration
	log       *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

type session struct {
	ctrl    *registration.Controller
	touched time.Time
}

// RegistrationOption configures a RegistrationService.
type RegistrationOption func(*RegistrationService)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) RegistrationOption {
	return func(s *RegistrationService) { s.now = now }
}

// NewRegistrationService constructs a RegistrationService whose forms submit
// through submitter. Sessions idle for longer than ttl are forgotten; a ttl
// of zero keeps them until closed.
func NewRegistrationService(submitter registration.Submitter, ttl time.Duration, log *slog.Logger, opts ...RegistrationOption) *RegistrationService {
	s := &RegistrationService{
		submitter: submitter,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts a registration for trip and returns its session id.
// schoolID pre-selects a school when it names one the trip lists; otherwise
// it is ignored.
func (s *RegistrationService) Open(trip domain.FieldTrip, schoolID string) (uuid.UUID, *registration.Controller) {
	ctrl := registration.New(trip, s.submitter)
	if _, ok := trip.School(schoolID); ok {
		// Edit cannot fail here: the controller is new and school_id is editable.
		_ = ctrl.Edit(domain.FieldSchoolID.String(), schoolID)
	}

	id := uuid.New()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(now)
	s.sessions[id] = &session{ctrl: ctrl, touched: now}
	s.log.Info("registration opened", "session_id", id, "field_trip_id", trip.ID)
	return id, ctrl
}

// Get returns the controller for id and marks the session as active.
// Returns domain.ErrNotFound if the session does not exist or has expired.
func (s *RegistrationService) Get(id uuid.UUID) (*registration.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	now := s.now()
	if !ok || s.expired(sess, now) {
		return nil, fmt.Errorf("service.RegistrationService.Get: session %s: %w", id, domain.ErrNotFound)
	}
	sess.touched = now
	return sess.ctrl, nil
}

// Close closes the form and forgets the session.
// While a submission is in flight the session is kept and domain.ErrBusy returned.
func (s *RegistrationService) Close(id uuid.UUID) error {
	ctrl, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := ctrl.Close(); err != nil {
		return fmt.Errorf("service.RegistrationService.Close: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	s.log.Info("registration closed", "session_id", id)
	return nil
}

// Len returns the number of open sessions.
func (s *RegistrationService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweep drops expired sessions. Must be called with s.mu held.
func (s *RegistrationService) sweep(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			s.log.Debug("registration expired", "session_id", id)
		}
	}
}

// expired reports whether sess has been idle past the TTL.
// A session with a submission in flight never expires.
func (s *RegistrationService) expired(sess *session, now time.Time) bool {
	if s.ttl <= 0 || sess.ctrl.Status() == registration.StatusSubmitting {
		return false
	}
	return now.Sub(sess.touched) > s.ttl
}
