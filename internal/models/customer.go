package models

// Customer is the denormalized billing row the store returns: a tenant
// joined with the display fields of the property they rent.
type Customer struct {
	ID         int64   `json:"id"`
	Name       string  `json:"c_name"`
	Contact    string  `json:"contact"`
	PropertyID int64   `json:"p_id,omitempty"`
	Property   string  `json:"p_name"`
	Price      float64 `json:"price"`
	Date       string  `json:"date"`
}

// CustomerInput is the payload for creating or updating a billing record.
type CustomerInput struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	PropertyID int64  `json:"property_id"`
	Date       string `json:"date"`
}
