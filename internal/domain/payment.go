package domain

import "sort"

// PaymentRequest is the registration form as sent to the payment endpoint.
// All values are kept exactly as typed; validation never rewrites them.
type PaymentRequest struct {
	ParentFirstName  string `json:"parent_first_name"`
	ParentLastName   string `json:"parent_last_name"`
	Email            string `json:"email"`
	StudentFirstName string `json:"student_first_name"`
	StudentLastName  string `json:"student_last_name"`
	CardNumber       string `json:"card_number"`
	ExpiryDate       string `json:"expiry_date"`
	CVV              string `json:"cvv"`
	FieldTripID      string `json:"field_trip_id"`
	SchoolID         string `json:"school_id"`
}

// NewPaymentRequest returns the empty form for trip.
// The school is filled in only when the trip has exactly one.
func NewPaymentRequest(trip FieldTrip) PaymentRequest {
	req := PaymentRequest{FieldTripID: trip.ID}
	if len(trip.Schools) == 1 {
		req.SchoolID = trip.Schools[0].ID
	}
	return req
}

// Get returns the value of field f.
func (r *PaymentRequest) Get(f Field) string {
	if p := r.slot(f); p != nil {
		return *p
	}
	return ""
}

// Set stores value in field f. Unknown fields are ignored.
func (r *PaymentRequest) Set(f Field, value string) {
	if p := r.slot(f); p != nil {
		*p = value
	}
}

func (r *PaymentRequest) slot(f Field) *string {
	switch f {
	case FieldParentFirstName:
		return &r.ParentFirstName
	case FieldParentLastName:
		return &r.ParentLastName
	case FieldEmail:
		return &r.Email
	case FieldStudentFirstName:
		return &r.StudentFirstName
	case FieldStudentLastName:
		return &r.StudentLastName
	case FieldCardNumber:
		return &r.CardNumber
	case FieldExpiryDate:
		return &r.ExpiryDate
	case FieldCVV:
		return &r.CVV
	case FieldSchoolID:
		return &r.SchoolID
	case FieldFieldTripID:
		return &r.FieldTripID
	}
	return nil
}

// PaymentResponse is the confirmation returned by the backend on 201 Created.
type PaymentResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Student  int64  `json:"student"`
	Activity string `json:"activity"`
}

// APIError is the 400 response body: field name to list of messages.
type APIError map[string][]string

// Headline returns the message to show for a rejected payment: the first
// message of the first field, with fields taken in lexical order so the
// choice does not depend on map iteration order.
func (e APIError) Headline() (string, bool) {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, msg := range e[k] {
			if msg != "" {
				return msg, true
			}
		}
	}
	return "", false
}

// ResultKind tags the outcome of a payment submission.
type ResultKind uint8

const (
	// ResultSucceeded: the backend answered 201 and Data holds the confirmation.
	ResultSucceeded ResultKind = iota + 1
	// ResultRejected: the backend answered 400; Errors holds its field messages.
	ResultRejected
	// ResultNetworkError: the request never completed.
	ResultNetworkError
	// ResultServerError: any other status.
	ResultServerError
)

func (k ResultKind) String() string {
	switch k {
	case ResultSucceeded:
		return "succeeded"
	case ResultRejected:
		return "rejected"
	case ResultNetworkError:
		return "network_error"
	case ResultServerError:
		return "server_error"
	}
	return "unknown"
}

// PaymentResult is the outcome of one payment submission.
// Data is set only on success; Errors and Message only on failure.
type PaymentResult struct {
	Kind    ResultKind
	Data    *PaymentResponse
	Errors  APIError
	Message string
}

// Success reports whether the payment went through.
func (r PaymentResult) Success() bool {
	return r.Kind == ResultSucceeded
}
