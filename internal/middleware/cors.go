// Package middleware provides the HTTP middleware wrapped around the widget's routes.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that lets the pages in allowedOrigins
// embed the widget and call its JSON endpoints.
// Each entry must be a full origin (scheme + host, no trailing slash).
// The widget only reads pages and posts forms, so only GET and POST are allowed.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler
}
