package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
	"github.com/pkordes/fieldtrip-widget/internal/handler"
	"github.com/pkordes/fieldtrip-widget/internal/page"
	"github.com/pkordes/fieldtrip-widget/internal/registration"
	"github.com/pkordes/fieldtrip-widget/internal/service"
)

// mockPage is a test double for handler.PageController.
// Set only the method fields your test needs.
type mockPage struct {
	state func() page.State
	retry func() error
}

func (m *mockPage) State() page.State { return m.state() }
func (m *mockPage) Retry() error      { return m.retry() }

// compile-time check: mockPage must satisfy handler.PageController.
var _ handler.PageController = (*mockPage)(nil)

// mockSubmitter is a test double for registration.Submitter that counts calls.
type mockSubmitter struct {
	calls  atomic.Int32
	submit func(ctx context.Context, req domain.PaymentRequest) domain.PaymentResult
}

func (m *mockSubmitter) SubmitPayment(ctx context.Context, req domain.PaymentRequest) domain.PaymentResult {
	m.calls.Add(1)
	return m.submit(ctx, req)
}

// compile-time check: mockSubmitter must satisfy registration.Submitter.
var _ registration.Submitter = (*mockSubmitter)(nil)

// ---- helpers ---------------------------------------------------------------

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func zooTrip() domain.FieldTrip {
	return domain.FieldTrip{
		ID:       "trip-1",
		Location: "Auckland Zoo",
		Cost:     decimal.NewFromInt(20),
		Date:     time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
		Schools: []domain.School{
			{ID: "s1", Name: "Auckland School"},
			{ID: "s2", Name: "Wellington School"},
		},
	}
}

func readyPage(trip *domain.FieldTrip) *mockPage {
	return &mockPage{state: func() page.State {
		return page.State{Status: page.StatusReady, Trip: trip}
	}}
}

func succeeding() *mockSubmitter {
	return &mockSubmitter{submit: func(context.Context, domain.PaymentRequest) domain.PaymentResult {
		return domain.PaymentResult{
			Kind: domain.ResultSucceeded,
			Data: &domain.PaymentResponse{ID: "pay-1", Amount: "20.00"},
		}
	}}
}

// newHTTPHandler wires a Server the way main.go does, with an in-memory
// session store submitting through sub.
func newHTTPHandler(pg handler.PageController, sub registration.Submitter) (http.Handler, *service.RegistrationService) {
	sessions := service.NewRegistrationService(sub, time.Hour, discard)
	return handler.NewServer(pg, sessions, discard, time.UTC).Routes(), sessions
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(h http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// openRegistration posts the Register form and returns the session path.
func openRegistration(t *testing.T, h http.Handler, form url.Values) string {
	t.Helper()
	rec := postForm(h, "/registrations", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/registrations/"), "Location: %q", loc)
	return loc
}

func completeForm() url.Values {
	return url.Values{
		"parent_first_name":  {"Jane"},
		"parent_last_name":   {"Doe"},
		"email":              {"jane@example.com"},
		"student_first_name": {"Alice"},
		"student_last_name":  {"Doe"},
		"card_number":        {"4242424242424242"},
		"expiry_date":        {"12/27"},
		"cvv":                {"123"},
		"school_id":          {"s1"},
	}
}
