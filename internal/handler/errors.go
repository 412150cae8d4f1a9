package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
)

// ErrorResponse is the JSON body of every error answer.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a message safe to show.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps a sentinel error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBusy),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNoFieldTrip):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// detailFor returns the code and static message for err. Wrapped error text
// is never sent to the browser.
func detailFor(err error) ErrorDetail {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ErrorDetail{Code: "not_found", Message: "registration not found"}
	case errors.Is(err, domain.ErrValidation):
		return ErrorDetail{Code: "validation_error", Message: "invalid form input"}
	case errors.Is(err, domain.ErrBusy):
		return ErrorDetail{Code: "busy", Message: "a payment is being processed"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return ErrorDetail{Code: "conflict", Message: "action not available right now"}
	case errors.Is(err, domain.ErrNoFieldTrip):
		return ErrorDetail{Code: "conflict", Message: "no field trip loaded"}
	}
	return ErrorDetail{Code: "internal_error", Message: "internal server error"}
}

// requestError answers a request rejected before reaching a controller.
func requestError(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}})
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		s.log.DebugContext(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: detailFor(err)})
}
