package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
)

func TestAPIErrorHeadline(t *testing.T) {
	tests := []struct {
		name   string
		errs   domain.APIError
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"empty lists", domain.APIError{"cvv": {}, "email": {""}}, "", false},
		{"single", domain.APIError{"card_number": {"Card declined"}}, "Card declined", true},
		{"lexical field order", domain.APIError{"email": {"Email taken"}, "cvv": {"Bad CVV", "Other"}}, "Bad CVV", true},
		{"skips empty leading field", domain.APIError{"a": {}, "b": {"", "Second"}}, "Second", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.errs.Headline()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewPaymentRequest(t *testing.T) {
	one := domain.FieldTrip{ID: "t1", Schools: []domain.School{{ID: "s1"}}}
	two := domain.FieldTrip{ID: "t2", Schools: []domain.School{{ID: "s1"}, {ID: "s2"}}}

	assert.Equal(t, domain.PaymentRequest{FieldTripID: "t1", SchoolID: "s1"}, domain.NewPaymentRequest(one))
	assert.Equal(t, domain.PaymentRequest{FieldTripID: "t2"}, domain.NewPaymentRequest(two))
	assert.Equal(t, domain.PaymentRequest{FieldTripID: "t3"}, domain.NewPaymentRequest(domain.FieldTrip{ID: "t3"}))
}

func TestPaymentRequestGetSet(t *testing.T) {
	var req domain.PaymentRequest
	req.Set(domain.FieldExpiryDate, "12/27")
	req.Set(domain.Field(200), "ignored")

	assert.Equal(t, "12/27", req.ExpiryDate)
	assert.Equal(t, "12/27", req.Get(domain.FieldExpiryDate))
	assert.Empty(t, req.Get(domain.Field(200)))
}

func TestParseField(t *testing.T) {
	f, ok := domain.ParseField("student_last_name")
	assert.True(t, ok)
	assert.Equal(t, domain.FieldStudentLastName, f)
	assert.Equal(t, "student_last_name", f.String())

	_, ok = domain.ParseField("nickname")
	assert.False(t, ok)
}

func TestFormErrors(t *testing.T) {
	var errs domain.FormErrors
	assert.False(t, errs.Any())
	assert.Empty(t, errs.Map())

	errs.Set(domain.FieldCVV, "CVV is required")
	errs.Set(domain.FieldEmail, "Email is required")
	errs.Clear(domain.FieldEmail)

	assert.True(t, errs.Any())
	assert.Equal(t, "CVV is required", errs.Get(domain.FieldCVV))
	assert.Equal(t, map[string]string{"cvv": "CVV is required"}, errs.Map())
}

func TestPaymentResultSuccess(t *testing.T) {
	assert.True(t, domain.PaymentResult{Kind: domain.ResultSucceeded}.Success())
	for _, k := range []domain.ResultKind{domain.ResultRejected, domain.ResultNetworkError, domain.ResultServerError} {
		assert.False(t, domain.PaymentResult{Kind: k}.Success(), k.String())
	}
}
