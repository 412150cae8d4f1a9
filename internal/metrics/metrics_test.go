package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fieldtrip-widget/internal/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_CountsOutcomes(t *testing.T) {
	m := metrics.New()

	m.ObserveFetch("succeeded")
	m.ObservePayment("rejected")
	m.ObservePayment("rejected")
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, 0.01)

	body := scrape(t, m)
	assert.Contains(t, body, `fieldtrip_fetches_total{outcome="succeeded"} 1`)
	assert.Contains(t, body, `fieldtrip_payment_submissions_total{outcome="rejected"} 2`)
	assert.Contains(t, body, `fieldtrip_http_request_duration_seconds_count{method="GET",route="/",status="200"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := metrics.New(), metrics.New()

	a.ObserveFetch("succeeded")

	assert.NotContains(t, scrape(t, b), `fieldtrip_fetches_total{outcome="succeeded"}`)
}
