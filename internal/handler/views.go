package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
	"github.com/pkordes/fieldtrip-widget/internal/format"
	"github.com/pkordes/fieldtrip-widget/internal/page"
	"github.com/pkordes/fieldtrip-widget/internal/registration"
)

//go:embed templates/*.html
var templateFS embed.FS

// views holds one parsed template set per page. Each set is the layout plus
// the page's "content" definition.
type views struct {
	page         *template.Template
	registration *template.Template
}

func parseViews() *views {
	layout := template.Must(template.ParseFS(templateFS, "templates/layout.html"))
	withContent := func(file string) *template.Template {
		return template.Must(template.Must(layout.Clone()).ParseFS(templateFS, file))
	}
	return &views{
		page:         withContent("templates/page.html"),
		registration: withContent("templates/registration.html"),
	}
}

type layoutData struct {
	Title string
	// Refresh makes the browser poll while a load or submission is pending.
	Refresh bool
	Body    any
}

type tripView struct {
	ID       string
	Location string
	Date     string
	Cost     string
	Schools  []domain.School
}

func newTripView(t domain.FieldTrip, loc *time.Location) tripView {
	return tripView{
		ID:       t.ID,
		Location: t.Location,
		Date:     format.LongDate(t.Date, loc),
		Cost:     format.Currency(t.Cost),
		Schools:  t.Schools,
	}
}

type pageView struct {
	Status   string
	Message  string
	Trip     *tripView
	SchoolID string
}

func newPageView(st page.State, schoolID string, loc *time.Location) pageView {
	v := pageView{Status: st.Status.String(), Message: st.Message, SchoolID: schoolID}
	if st.Trip != nil {
		tv := newTripView(*st.Trip, loc)
		v.Trip = &tv
	}
	return v
}

type fieldView struct {
	Name        string
	Label       string
	Type        string
	Value       string
	MaxLength   int
	Placeholder string
	Error       string
}

type sectionView struct {
	Title  string
	Fields []fieldView
}

type fieldLayout struct {
	field       domain.Field
	label       string
	kind        string
	maxLength   int
	placeholder string
}

var formLayout = []struct {
	title  string
	fields []fieldLayout
}{
	{"Parent Information", []fieldLayout{
		{field: domain.FieldParentFirstName, label: "First Name", kind: "text"},
		{field: domain.FieldParentLastName, label: "Last Name", kind: "text"},
		{field: domain.FieldEmail, label: "Email", kind: "email"},
	}},
	{"Student Information", []fieldLayout{
		{field: domain.FieldStudentFirstName, label: "First Name", kind: "text"},
		{field: domain.FieldStudentLastName, label: "Last Name", kind: "text"},
	}},
	{"Payment Details", []fieldLayout{
		{field: domain.FieldCardNumber, label: "Card Number", kind: "text", maxLength: 16, placeholder: "1234567890123456"},
		{field: domain.FieldExpiryDate, label: "Expiry Date", kind: "text", maxLength: 5, placeholder: "MM/YY"},
		{field: domain.FieldCVV, label: "CVV", kind: "text", maxLength: 3, placeholder: "123"},
	}},
}

type fieldErrorView struct {
	Field   string
	Message string
}

type resultView struct {
	Success     bool
	Message     string
	FieldErrors []fieldErrorView
}

func newResultView(r domain.PaymentResult) *resultView {
	v := &resultView{Success: r.Success(), Message: r.Message}
	fields := make([]string, 0, len(r.Errors))
	for f := range r.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		for _, msg := range r.Errors[f] {
			v.FieldErrors = append(v.FieldErrors, fieldErrorView{Field: f, Message: msg})
		}
	}
	return v
}

type registrationView struct {
	Base       string
	Trip       tripView
	Form       domain.PaymentRequest
	Errors     map[string]string
	Sections   []sectionView
	Submitting bool
	Result     *resultView
}

func newRegistrationView(base string, snap registration.Snapshot, loc *time.Location) registrationView {
	v := registrationView{
		Base:       base,
		Trip:       newTripView(snap.Trip, loc),
		Form:       snap.Form,
		Errors:     snap.Errors.Map(),
		Submitting: snap.Status == registration.StatusSubmitting,
	}
	if snap.Result != nil && (snap.Status == registration.StatusSucceeded || snap.Status == registration.StatusFailed) {
		v.Result = newResultView(*snap.Result)
	}
	for _, sec := range formLayout {
		sv := sectionView{Title: sec.title}
		for _, fl := range sec.fields {
			sv.Fields = append(sv.Fields, fieldView{
				Name:        fl.field.String(),
				Label:       fl.label,
				Type:        fl.kind,
				Value:       snap.Form.Get(fl.field),
				MaxLength:   fl.maxLength,
				Placeholder: fl.placeholder,
				Error:       snap.Errors.Get(fl.field),
			})
		}
		v.Sections = append(v.Sections, sv)
	}
	return v
}

// writeHTML renders the layout into a buffer first so a template error can
// still become a clean 500.
func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, status int, t *template.Template, data layoutData) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.ErrorContext(r.Context(), "render template", "template", t.Name(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
