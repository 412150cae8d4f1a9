// Package registration holds the state of one registration form: its field
// values, their errors, and where the form is in the submit flow.
//
//	Editing ──Submit(valid)──▶ Submitting ──▶ Succeeded
//	   ▲                           │
//	   └──────────Retry────── Failed ◀┘
//
// Editing, Succeeded and Failed move to Closed on Close, which resets the
// form. Closed is final; registering again starts a new controller.
package registration

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
	"github.com/pkordes/fieldtrip-widget/internal/validation"
)

// Status is the controller's position in the submit flow.
type Status uint8

const (
	StatusEditing Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusClosed:
		return "closed"
	}
	return "unknown"
}

// SchoolRequiredMessage is recorded against school_id when none is selected.
const SchoolRequiredMessage = "Please select a school"

// Submitter sends a completed form to the backend.
// *client.Client satisfies it.
type Submitter interface {
	SubmitPayment(ctx context.Context, req domain.PaymentRequest) domain.PaymentResult
}

// Snapshot is a copy of the controller's state at one instant.
type Snapshot struct {
	Status Status
	Trip   domain.FieldTrip
	Form   domain.PaymentRequest
	Errors domain.FormErrors
	// Result is the outcome of the last submission; nil before the first one
	// and after Close.
	Result *domain.PaymentResult
}

// Controller is the registration form for one field trip.
// It is safe for concurrent use; at most one submission runs at a time.
type Controller struct {
	trip      domain.FieldTrip
	submitter Submitter
	inflight  *semaphore.Weighted

	mu     sync.Mutex
	status Status
	form   domain.PaymentRequest
	errors domain.FormErrors
	result *domain.PaymentResult
}

// New returns a controller in Editing with an empty form for trip.
func New(trip domain.FieldTrip, submitter Submitter) *Controller {
	return &Controller{
		trip:      trip,
		submitter: submitter,
		inflight:  semaphore.NewWeighted(1),
		form:      domain.NewPaymentRequest(trip),
	}
}

// Edit stores value in the named field. A recorded error on that field is
// cleared; the value itself is validated only on Blur or Submit.
func (c *Controller) Edit(name, value string) error {
	f, err := editableField(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireEditing("Edit"); err != nil {
		return err
	}
	c.form.Set(f, value)
	c.errors.Clear(f)
	return nil
}

// Blur validates the named field's current value and records or clears its error.
func (c *Controller) Blur(name string) error {
	f, err := editableField(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireEditing("Blur"); err != nil {
		return err
	}
	c.errors.Set(f, validation.ValidateField(name, c.form.Get(f)))
	return nil
}

// Submit validates the whole form and, if it passes, sends it.
//
// When validation fails every error is recorded, the controller stays in
// Editing and an error wrapping domain.ErrValidation is returned; nothing is
// sent. Otherwise the controller is Submitting until the submitter returns,
// then Succeeded or Failed. A second Submit while one is running returns
// domain.ErrBusy.
func (c *Controller) Submit(ctx context.Context) (domain.PaymentResult, error) {
	if !c.inflight.TryAcquire(1) {
		return domain.PaymentResult{}, fmt.Errorf("registration.Controller.Submit: %w", domain.ErrBusy)
	}
	defer c.inflight.Release(1)

	c.mu.Lock()
	if err := c.requireEditing("Submit"); err != nil {
		c.mu.Unlock()
		return domain.PaymentResult{}, err
	}
	errs := validation.ValidateForm(c.form)
	if c.form.SchoolID == "" {
		errs.Set(domain.FieldSchoolID, SchoolRequiredMessage)
	}
	c.errors = errs
	if validation.HasErrors(errs) {
		c.mu.Unlock()
		return domain.PaymentResult{}, fmt.Errorf("registration.Controller.Submit: %w", domain.ErrValidation)
	}
	c.status = StatusSubmitting
	req := c.form
	c.mu.Unlock()

	result := c.submitter.SubmitPayment(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = &result
	if result.Success() {
		c.status = StatusSucceeded
	} else {
		c.status = StatusFailed
	}
	return result, nil
}

// Retry returns a Failed form to Editing with its values intact, so the next
// Submit resends the same data.
func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusFailed {
		return c.transitionErr("Retry")
	}
	c.status = StatusEditing
	c.result = nil
	return nil
}

// Close dismisses the form and resets every field and error.
// It is refused while a submission is in flight.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.status {
	case StatusSubmitting:
		return fmt.Errorf("registration.Controller.Close: %w", domain.ErrBusy)
	case StatusClosed:
		return nil
	}
	c.status = StatusClosed
	c.form = domain.NewPaymentRequest(c.trip)
	c.errors = domain.FormErrors{}
	c.result = nil
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Status: c.status,
		Trip:   c.trip,
		Form:   c.form,
		Errors: c.errors,
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	return s
}

// Status returns the current status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// requireEditing must be called with c.mu held.
func (c *Controller) requireEditing(op string) error {
	switch c.status {
	case StatusEditing:
		return nil
	case StatusSubmitting:
		return fmt.Errorf("registration.Controller.%s: %w", op, domain.ErrBusy)
	}
	return c.transitionErr(op)
}

func (c *Controller) transitionErr(op string) error {
	return fmt.Errorf("registration.Controller.%s: from %s: %w", op, c.status, domain.ErrInvalidTransition)
}

// editableField resolves name to a field the user may type into.
func editableField(name string) (domain.Field, error) {
	f, ok := domain.ParseField(name)
	if !ok || f == domain.FieldFieldTripID {
		return 0, fmt.Errorf("unknown field %q: %w", name, domain.ErrValidation)
	}
	return f, nil
}
