package domain

import "errors"

// ErrNotFound is returned when a registration session does not exist or has
// expired. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when form input fails client-side validation.
// Nothing is sent to the backend when this error is returned.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrFieldTripsUnavailable is returned by the fetch client when the backend
// could not be reached or answered with a non-2xx status.
var ErrFieldTripsUnavailable = errors.New("field trips unavailable")

// ErrBusy is returned when an action is attempted while a payment submission
// is in flight. Handlers should map this to HTTP 409.
var ErrBusy = errors.New("submission in progress")

// ErrInvalidTransition is returned when an action is not allowed from the
// controller's current state (e.g. retrying a page that loaded fine).
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrNoFieldTrip is returned when registration is requested before a field
// trip has been loaded.
var ErrNoFieldTrip = errors.New("no field trip loaded")

// FetchFailedMessage is shown to the user whenever the field trip could not be loaded.
const FetchFailedMessage = "Failed to load field trip information. Please try again."
