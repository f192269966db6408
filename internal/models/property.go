package models

import "strconv"

// Property is a rental unit managed by the record store.
// Field tags follow the store's wire format.
type Property struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
}

// Available reports whether the property can be offered to a new customer.
func (p Property) Available() bool {
	return p.Status == StatusAvailable
}

// PropertyInput is the payload for creating a property.
// Status is server-assigned and intentionally absent.
type PropertyInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// FormatAmount renders a price the way the store reports it: no
// trailing zeros for whole amounts.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
