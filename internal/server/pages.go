package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"rentadmin/internal/events"
	"rentadmin/internal/form"
	"rentadmin/internal/list"
	"rentadmin/internal/metrics"
	"rentadmin/internal/models"
	"rentadmin/internal/store"
	"rentadmin/internal/view"
)

// isStoreError tells a failed store round trip apart from local form
// validation, which gets a 400 instead of a 502.
func isStoreError(err error) bool {
	var se *store.StatusError
	if errors.As(err, &se) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

// controls are the filter and sort parameters carried in the query
// string, so the view state survives the stateless round trips.
type controls struct {
	Query   string
	SortCol int
	SortDir string
}

func parseControls(r *http.Request) controls {
	c := controls{Query: strings.TrimSpace(r.URL.Query().Get("q")), SortCol: -1, SortDir: "asc"}
	if raw := r.URL.Query().Get("sort"); raw != "" {
		if col, err := strconv.Atoi(raw); err == nil && col >= 0 {
			c.SortCol = col
		}
	}
	if r.URL.Query().Get("dir") == "desc" {
		c.SortDir = "desc"
	}
	return c
}

// apply filters then sorts the table. Sorting covers hidden rows too,
// so clearing the filter later leaves a consistent order.
func (c controls) apply(t *view.Table) {
	if c.Query != "" {
		list.Filter(t, c.Query)
	}
	if c.SortCol >= 0 {
		list.SortDirection(t, c.SortCol, c.SortDir != "desc")
	}
}

func (s *Server) newPage(r *http.Request, title, tableKey string, c controls) *view.Page {
	header, footer := s.fragments(r.Context())
	return &view.Page{
		Title:          title,
		AppTitle:       s.cfg.UI.Title,
		Header:         header,
		Footer:         footer,
		Path:           r.URL.Path,
		TableKey:       tableKey,
		Query:          c.Query,
		SortCol:        c.SortCol,
		SortDir:        c.SortDir,
		ConfirmDeletes: s.cfg.ConfirmDeletes(),
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	props, err := s.store.FetchProperties(r.Context())
	if err != nil {
		s.storeError(w, err, "fetch properties")
		return
	}
	available := 0
	for _, p := range props {
		if p.Available() {
			available++
		}
	}

	page := s.newPage(r, "Dashboard", "", controls{SortCol: -1})
	page.AvailableCount = available
	metrics.IncPage("dashboard")
	s.render(w, "dashboard", page)
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderProperties(w, r)
	case http.MethodPost:
		s.createProperty(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.store.FetchProperties(r.Context())
	if err != nil {
		s.storeError(w, err, "fetch properties")
		return
	}

	c := parseControls(r)
	table := s.renderer.PropertyTable(props)
	c.apply(table)

	page := s.newPage(r, "Properties", models.ResourceProperties, c)
	page.Table = table
	metrics.IncPage("properties")
	s.render(w, "properties", page)
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		http.Error(w, "invalid price", http.StatusBadRequest)
		return
	}
	input := models.PropertyInput{
		Title:       title,
		Description: strings.TrimSpace(r.FormValue("description")),
		Price:       price,
	}
	if err := s.store.CreateProperty(r.Context(), input); err != nil {
		s.storeError(w, err, "create property")
		return
	}

	s.publishRecordEvent(events.EventRecordCreated, models.ResourceProperties, 0, title)
	http.Redirect(w, r, "/properties", http.StatusSeeOther)
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderCustomers(w, r)
	case http.MethodPost:
		s.submitCustomer(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderCustomers(w http.ResponseWriter, r *http.Request) {
	props, err := s.store.FetchProperties(r.Context())
	if err != nil {
		s.storeError(w, err, "fetch properties")
		return
	}
	rows, err := s.store.FetchBilling(r.Context())
	if err != nil {
		s.storeError(w, err, "fetch billing")
		return
	}

	formState := form.NewState(props, s.cfg.UI.CurrencyGlyph)
	if raw := r.URL.Query().Get("edit"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid edit id", http.StatusBadRequest)
			return
		}
		found := false
		for _, row := range rows {
			if row.ID == id {
				formState = form.EditState(row, props, s.cfg.UI.CurrencyGlyph)
				found = true
				break
			}
		}
		if !found {
			http.Error(w, "billing record not found", http.StatusNotFound)
			return
		}
	}

	c := parseControls(r)
	table := s.renderer.CustomerTable(rows)
	c.apply(table)

	page := s.newPage(r, "Customer Details", "customers", c)
	page.Table = table
	page.Form = formState
	metrics.IncPage("customers")
	s.render(w, "customers", page)
}

func (s *Server) submitCustomer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	st := &form.State{
		Mode:    form.ModeCreate,
		Name:    strings.TrimSpace(r.FormValue("name")),
		Contact: strings.TrimSpace(r.FormValue("contact")),
		Date:    r.FormValue("date"),
	}
	if raw := r.FormValue("property_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid property id", http.StatusBadRequest)
			return
		}
		st.PropertyID = id
	}
	if raw := r.FormValue("cust_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid customer id", http.StatusBadRequest)
			return
		}
		st.Mode = form.ModeEdit
		st.EditID = id
	}

	if err := s.form.Submit(r.Context(), st); err != nil {
		if isStoreError(err) {
			s.storeError(w, err, "submit customer form")
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	eventType := events.EventRecordCreated
	if st.Mode == form.ModeEdit {
		eventType = events.EventRecordUpdated
	}
	s.publishRecordEvent(eventType, models.ResourceBilling, st.EditID, st.Name)
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (s *Server) handleBilling(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := s.store.FetchBilling(r.Context())
	if err != nil {
		s.storeError(w, err, "fetch billing")
		return
	}

	c := parseControls(r)
	table := s.renderer.BillingTable(rows)
	c.apply(table)

	page := s.newPage(r, "Billing", models.ResourceBilling, c)
	page.Table = table
	metrics.IncPage("billing")
	s.render(w, "billing", page)
}

func (s *Server) publishRecordEvent(eventType, resource string, id int64, title string) {
	err := s.bus.PublishJSON(eventType, events.RecordEventPayload{
		Resource: resource,
		RecordID: id,
		Title:    title,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

func (s *Server) storeError(w http.ResponseWriter, err error, op string) {
	s.logger.Error().Err(err).Str("operation", op).Msg("record store request failed")
	http.Error(w, "record store unavailable", http.StatusBadGateway)
}
