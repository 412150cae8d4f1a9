// Package validation implements the client-side rules for the registration form.
// Every function here is pure: the same input always yields the same message.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// rule pairs a required-message with an optional format check.
// format is a validator tag expression; "" means presence is the only rule.
type rule struct {
	required  string
	format    string
	formatMsg string
}

var rules = map[domain.Field]rule{
	domain.FieldParentFirstName:  {required: "Parent first name is required"},
	domain.FieldParentLastName:   {required: "Parent last name is required"},
	domain.FieldStudentFirstName: {required: "Student first name is required"},
	domain.FieldStudentLastName:  {required: "Student last name is required"},
	domain.FieldEmail: {
		required:  "Email is required",
		format:    "emailaddr",
		formatMsg: "Enter a valid email address",
	},
	domain.FieldCardNumber: {
		required:  "Card number is required",
		format:    "len=16,digits",
		formatMsg: "Card number must be exactly 16 digits",
	},
	domain.FieldExpiryDate: {
		required:  "Expiry date is required",
		format:    "mmyy",
		formatMsg: "Enter a valid date in MM/YY format",
	},
	domain.FieldCVV: {
		required:  "CVV is required",
		format:    "len=3,digits",
		formatMsg: "CVV must be exactly 3 digits",
	},
}

var validate = newValidator()

// newValidator returns a validator with the form's custom tags registered.
// Registration only fails on programmer error, so it panics.
func newValidator() *validator.Validate {
	v := validator.New()
	custom := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"emailaddr": func(fl validator.FieldLevel) bool {
			addr := fl.Field().String()
			// RE2's \s is ASCII-only; NBSP, \v and the Unicode separators count too.
			return !strings.ContainsFunc(addr, unicode.IsSpace) && emailPattern.MatchString(addr)
		},
		"digits": matches(digitsPattern),
		"mmyy":   matches(expiryPattern),
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic("validation: register " + tag + ": " + err.Error())
		}
	}
	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// ValidateField returns the error message for value in the field named name,
// or "" when the value passes. Unknown field names are not validated.
// A blank value always reports the required-message, never the format one.
func ValidateField(name, value string) string {
	f, ok := domain.ParseField(name)
	if !ok {
		return ""
	}
	return check(f, value)
}

func check(f domain.Field, value string) string {
	r, ok := rules[f]
	if !ok {
		return ""
	}
	if validate.Var(value, "notblank") != nil {
		return r.required
	}
	if r.format != "" && validate.Var(value, r.format) != nil {
		return r.formatMsg
	}
	return ""
}

// ValidateForm runs every field rule over req and collects the failures.
// school_id and field_trip_id are left to the caller.
func ValidateForm(req domain.PaymentRequest) domain.FormErrors {
	var errs domain.FormErrors
	for _, f := range domain.ValidatedFields {
		errs.Set(f, check(f, req.Get(f)))
	}
	return errs
}

// HasErrors reports whether errs holds at least one message.
func HasErrors(errs domain.FormErrors) bool {
	return errs.Any()
}
