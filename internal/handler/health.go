package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{Status: "ok"})
}
