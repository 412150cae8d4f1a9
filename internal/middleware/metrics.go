package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestObserver records served requests. *metrics.Metrics implements it.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, seconds float64)
}

// NewMetrics returns a middleware that reports every request's duration to obs,
// labelled with the chi route pattern rather than the raw path so session
// ids do not explode the label set.
func NewMetrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			obs.ObserveRequest(r.Method, route, status, time.Since(start).Seconds())
		})
	}
}
