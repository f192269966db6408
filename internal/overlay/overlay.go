package overlay

import (
	"fmt"
	"strings"

	"rentadmin/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

// Field is one labelled line of the info card.
type Field struct {
	Label string
	Value string
}

// Selection is the record subset shown on the info overlay. The full
// field list feeds the card and the scannable code; the compact values
// are the fallback payload when the full text cannot be encoded.
type Selection struct {
	Fields  []Field
	compact []string
}

// PropertySelection picks the overlay fields for a property record.
func PropertySelection(p models.Property, glyph string) Selection {
	rent := glyph + models.FormatAmount(p.Price)
	s := Selection{
		Fields: []Field{
			{Label: "Title", Value: p.Title},
			{Label: "Rent", Value: rent},
			{Label: "Status", Value: p.Status},
		},
		compact: []string{p.Title, rent, p.Status},
	}
	if p.Description != "" {
		s.Fields = append(s.Fields, Field{Label: "Description", Value: p.Description})
	}
	return s
}

// BillingSelection picks the overlay fields for a billing record.
func BillingSelection(c models.Customer, glyph string) Selection {
	amount := glyph + models.FormatAmount(c.Price)
	return Selection{
		Fields: []Field{
			{Label: "Property", Value: c.Property},
			{Label: "Customer", Value: c.Name},
			{Label: "Amount", Value: amount},
			{Label: "Contact", Value: c.Contact},
			{Label: "Billing Date", Value: c.Date},
		},
		compact: []string{c.Property, c.Name, amount, c.Date},
	}
}

// Lines renders the card text, one "Label: Value" per field.
func (s Selection) Lines() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Label + ": " + f.Value
	}
	return out
}

// Payload is the full scannable text.
func (s Selection) Payload() string {
	return strings.Join(s.Lines(), "\n")
}

// Compact is the reduced pipe-separated payload used when the full one
// does not fit in a code.
func (s Selection) Compact() string {
	return strings.Join(s.compact, "|")
}

// QR encodes the selection as a PNG at low error correction, which
// gives the largest text capacity. If the full payload still does not
// fit it degrades once to the compact payload.
func (s Selection) QR(size int) ([]byte, error) {
	png, err := qrcode.Encode(s.Payload(), qrcode.Low, size)
	if err == nil {
		return png, nil
	}
	png, cerr := qrcode.Encode(s.Compact(), qrcode.Low, size)
	if cerr != nil {
		return nil, fmt.Errorf("encode record code: %w", cerr)
	}
	return png, nil
}
