// Package storetest provides an in-memory fake of the external record
// store for tests. It mirrors the store's JSON contract, including the
// rented/available side effects of billing mutations.
package storetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"rentadmin/internal/models"
)

type billingRow struct {
	ID         int64
	Name       string
	Contact    string
	PropertyID int64
	Date       string
}

// Store is a fake record store backed by maps. Zero value is not
// usable; construct with New.
type Store struct {
	mu sync.Mutex

	properties map[int64]*models.Property
	billing    map[int64]*billingRow
	nextProp   int64
	nextBill   int64

	// SupportsUpdate controls whether PUT /api/billing/{id} is
	// implemented; older stores answer 405.
	SupportsUpdate bool

	// Fragments served under /templates/{name}.html.
	Fragments map[string]string

	// Calls records every API hit in order, e.g. "POST /api/add-customer".
	Calls []string

	server *httptest.Server
}

func New() *Store {
	s := &Store{
		properties:     make(map[int64]*models.Property),
		billing:        make(map[int64]*billingRow),
		nextProp:       1,
		nextBill:       1,
		SupportsUpdate: true,
		Fragments:      map[string]string{},
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the base URL of the fake store.
func (s *Store) URL() string { return s.server.URL }

func (s *Store) Close() { s.server.Close() }

// AddProperty seeds a property and returns its id.
func (s *Store) AddProperty(title, description string, price float64, status string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextProp
	s.nextProp++
	s.properties[id] = &models.Property{
		ID: id, Title: title, Description: description, Price: price, Status: status,
	}
	return id
}

// AddCustomer seeds a billing row referencing propertyID and marks the
// property rented.
func (s *Store) AddCustomer(name, contact string, propertyID int64, date string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextBill
	s.nextBill++
	s.billing[id] = &billingRow{ID: id, Name: name, Contact: contact, PropertyID: propertyID, Date: date}
	if p, ok := s.properties[propertyID]; ok {
		p.Status = models.StatusRented
	}
	return id
}

// Property returns a copy of the stored property, or nil.
func (s *Store) Property(id int64) *models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// BillingCount returns how many billing rows exist.
func (s *Store) BillingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.billing)
}

// CallsTo returns the recorded calls whose path contains substr.
func (s *Store) CallsTo(substr string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, c := range s.Calls {
		if strings.Contains(c, substr) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.Calls = append(s.Calls, r.Method+" "+r.URL.Path)
	s.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/properties":
		s.listProperties(w)
	case r.Method == http.MethodGet && r.URL.Path == "/api/billing-data":
		s.listBilling(w)
	case r.Method == http.MethodPost && r.URL.Path == "/api/add-property":
		s.addProperty(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/add-customer":
		s.addCustomer(w, r)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/billing/"):
		s.updateCustomer(w, r)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/"):
		s.deleteRecord(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/templates/"):
		s.serveFragment(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (s *Store) listProperties(w http.ResponseWriter) {
	s.mu.Lock()
	props := make([]models.Property, 0, len(s.properties))
	for id := int64(1); id < s.nextProp; id++ {
		if p, ok := s.properties[id]; ok {
			props = append(props, *p)
		}
	}
	s.mu.Unlock()
	writeJSON(w, props)
}

func (s *Store) listBilling(w http.ResponseWriter) {
	s.mu.Lock()
	rows := make([]models.Customer, 0, len(s.billing))
	for id := int64(1); id < s.nextBill; id++ {
		b, ok := s.billing[id]
		if !ok {
			continue
		}
		row := models.Customer{
			ID:         b.ID,
			Name:       b.Name,
			Contact:    b.Contact,
			PropertyID: b.PropertyID,
			Date:       b.Date,
		}
		if p, ok := s.properties[b.PropertyID]; ok {
			row.Property = p.Title
			row.Price = p.Price
		}
		rows = append(rows, row)
	}
	s.mu.Unlock()
	writeJSON(w, rows)
}

func (s *Store) addProperty(w http.ResponseWriter, r *http.Request) {
	var input models.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	id := s.nextProp
	s.nextProp++
	s.properties[id] = &models.Property{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Status:      models.StatusAvailable,
	}
	s.mu.Unlock()
	writeJSON(w, map[string]string{"status": "success"})
}

func (s *Store) addCustomer(w http.ResponseWriter, r *http.Request) {
	var input models.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	id := s.nextBill
	s.nextBill++
	s.billing[id] = &billingRow{
		ID:         id,
		Name:       input.Name,
		Contact:    input.Contact,
		PropertyID: input.PropertyID,
		Date:       input.Date,
	}
	if p, ok := s.properties[input.PropertyID]; ok {
		p.Status = models.StatusRented
	}
	s.mu.Unlock()
	writeJSON(w, map[string]string{"status": "success"})
}

func (s *Store) updateCustomer(w http.ResponseWriter, r *http.Request) {
	if !s.SupportsUpdate {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := pathID(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var input models.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.billing[id]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if b.PropertyID != input.PropertyID {
		if old, ok := s.properties[b.PropertyID]; ok {
			old.Status = models.StatusAvailable
		}
		if next, ok := s.properties[input.PropertyID]; ok {
			next.Status = models.StatusRented
		}
	}
	b.Name = input.Name
	b.Contact = input.Contact
	b.PropertyID = input.PropertyID
	b.Date = input.Date
	writeJSON(w, map[string]string{"status": "updated"})
}

func (s *Store) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case strings.Contains(r.URL.Path, "/properties/"):
		delete(s.properties, id)
	case strings.Contains(r.URL.Path, "/billing/"):
		if b, ok := s.billing[id]; ok {
			if p, ok := s.properties[b.PropertyID]; ok {
				p.Status = models.StatusAvailable
			}
		}
		delete(s.billing, id)
	default:
		http.Error(w, "unknown resource", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}

func (s *Store) serveFragment(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/templates/"), ".html")
	s.mu.Lock()
	fragment, ok := s.Fragments[name]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, fragment)
}

func pathID(path string) (int64, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	return strconv.ParseInt(parts[len(parts)-1], 10, 64)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
