package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/fieldtrip-widget/internal/page"
)

// GetPage handles GET /.
// Supports ?schoolId= to pre-select a school in the registration form.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	var schoolID string
	if err := runtime.BindQueryParameter("form", true, false, "schoolId", r.URL.Query(), &schoolID); err != nil {
		requestError(w, r, "invalid schoolId parameter")
		return
	}

	st := s.page.State()
	s.writeHTML(w, r, http.StatusOK, s.views.page, layoutData{
		Title:   "School Trip",
		Refresh: st.Status == page.StatusLoading,
		Body:    newPageView(st, schoolID, s.loc),
	})
}

// RetryPage handles POST /retry. It re-issues the field trip fetch after a
// failure and sends the browser back to the page, which shows the loading
// state until the fetch resolves.
func (s *Server) RetryPage(w http.ResponseWriter, r *http.Request) {
	if err := s.page.Retry(); err != nil {
		s.respondError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
