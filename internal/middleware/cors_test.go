package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fieldtrip-widget/internal/middleware"
)

const embeddingOrigin = "http://localhost:5173"

// okHandler always answers 200.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func corsRequest(method, origin string, headers map[string]string) *httptest.ResponseRecorder {
	h := middleware.NewCORSHandler([]string{embeddingOrigin})(okHandler)
	req := httptest.NewRequest(method, "/registrations", nil)
	req.Header.Set("Origin", origin)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestCORSHandler_GET_AllowedOrigin verifies that the embedding page's origin is echoed back.
func TestCORSHandler_GET_AllowedOrigin(t *testing.T) {
	rec := corsRequest(http.MethodGet, embeddingOrigin, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, embeddingOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORSHandler_OPTIONS_PostPreflight verifies that the JSON field endpoint
// can be called cross-origin. Header names in Access-Control-Request-Headers
// are lowercase, as browsers send them.
func TestCORSHandler_OPTIONS_PostPreflight(t *testing.T) {
	rec := corsRequest(http.MethodOptions, embeddingOrigin, map[string]string{
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "content-type",
	})

	assert.True(t, rec.Code == http.StatusNoContent || rec.Code == http.StatusOK,
		"expected 2xx for OPTIONS preflight, got %d", rec.Code)
	assert.Equal(t, embeddingOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, rec.Header().Get("Access-Control-Allow-Methods"))
}

// TestCORSHandler_OPTIONS_DeleteNotAllowed verifies that methods the widget
// never serves are not advertised to browsers.
func TestCORSHandler_OPTIONS_DeleteNotAllowed(t *testing.T) {
	rec := corsRequest(http.MethodOptions, embeddingOrigin, map[string]string{
		"Access-Control-Request-Method": http.MethodDelete,
	})

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

// TestCORSHandler_GET_DisallowedOrigin verifies that other origins get no
// Access-Control-Allow-Origin header, so the browser withholds the response.
func TestCORSHandler_GET_DisallowedOrigin(t *testing.T) {
	rec := corsRequest(http.MethodGet, "http://evil.example.com", nil)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
