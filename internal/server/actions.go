package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"rentadmin/internal/events"
	"rentadmin/internal/metrics"
	"rentadmin/internal/models"
	"rentadmin/internal/view"
)

type actionFunc func(w http.ResponseWriter, r *http.Request, ref view.RecordRef, returnTo string)

// handleAction dispatches a posted row action by name. Unknown names
// are rejected rather than guessed at.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("action")
	handler, ok := s.actions[name]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown action %q", name), http.StatusBadRequest)
		return
	}

	resource := r.FormValue("resource")
	if resource != models.ResourceProperties && resource != models.ResourceBilling {
		http.Error(w, fmt.Sprintf("unknown resource %q", resource), http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return
	}

	returnTo := sanitizeReturn(r.FormValue("return"))

	metrics.IncAction(name)
	handler(w, r, view.RecordRef{Resource: resource, ID: id}, returnTo)
}

// sanitizeReturn keeps redirects on-site.
func sanitizeReturn(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}

func (s *Server) actionDelete(w http.ResponseWriter, r *http.Request, ref view.RecordRef, returnTo string) {
	if s.cfg.ConfirmDeletes() && r.FormValue("confirmed") != "1" {
		page := s.newPage(r, "Confirm Delete", "", controls{SortCol: -1})
		page.Confirm = &view.Confirm{Resource: ref.Resource, ID: ref.ID, Return: returnTo}
		s.render(w, "confirm", page)
		return
	}

	if err := s.store.DeleteRecord(r.Context(), ref.Resource, ref.ID); err != nil {
		s.storeError(w, err, "delete record")
		return
	}

	s.publishRecordEvent(events.EventRecordDeleted, ref.Resource, ref.ID, "")
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

func (s *Server) actionEdit(w http.ResponseWriter, r *http.Request, ref view.RecordRef, returnTo string) {
	if ref.Resource != models.ResourceBilling {
		http.Error(w, "only billing records can be edited", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/customers?edit=%d", ref.ID), http.StatusSeeOther)
}

func (s *Server) actionInfo(w http.ResponseWriter, r *http.Request, ref view.RecordRef, returnTo string) {
	v := url.Values{}
	v.Set("resource", ref.Resource)
	v.Set("id", strconv.FormatInt(ref.ID, 10))
	v.Set("return", returnTo)
	http.Redirect(w, r, "/info?"+v.Encode(), http.StatusSeeOther)
}
