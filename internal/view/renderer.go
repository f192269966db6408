package view

import (
	"strconv"

	"rentadmin/internal/models"
)

// Renderer builds tables from store records. Records keep the server
// order they were fetched in.
type Renderer struct {
	glyph string
}

func NewRenderer(currencyGlyph string) *Renderer {
	if currencyGlyph == "" {
		currencyGlyph = models.DefaultCurrencyGlyph
	}
	return &Renderer{glyph: currencyGlyph}
}

// FormatPrice prefixes the amount with the currency glyph.
func (r *Renderer) FormatPrice(v float64) string {
	return r.glyph + models.FormatAmount(v)
}

// PropertyTable renders the property list: a position column, display
// fields, then delete and view-info actions.
func (r *Renderer) PropertyTable(props []models.Property) *Table {
	t := &Table{
		ID:      "propTable",
		Title:   "Properties",
		Columns: []string{"#", "Title", "Rent", "Status"},
	}
	for i, p := range props {
		ref := RecordRef{Resource: models.ResourceProperties, ID: p.ID}
		t.Rows = append(t.Rows, &Row{
			Ref: ref,
			Cells: []Cell{
				{Text: strconv.Itoa(i + 1)},
				{Text: p.Title},
				{Text: r.FormatPrice(p.Price)},
				{Text: p.Status, Tag: p.Status},
			},
			Actions: []RowAction{
				{Name: models.ActionInfo, Label: "View Info", Ref: ref},
				{Name: models.ActionDelete, Label: "Delete", Ref: ref},
			},
		})
	}
	return t
}

// CustomerTable renders the customer page table with edit and delete
// actions.
func (r *Renderer) CustomerTable(rows []models.Customer) *Table {
	t := &Table{
		ID:      "custTable",
		Title:   "Customers",
		Columns: []string{"Name", "Contact", "Property", "Billing Date"},
	}
	for _, c := range rows {
		ref := RecordRef{Resource: models.ResourceBilling, ID: c.ID}
		t.Rows = append(t.Rows, &Row{
			Ref: ref,
			Cells: []Cell{
				{Text: c.Name},
				{Text: c.Contact},
				{Text: c.Property},
				{Text: c.Date},
			},
			Actions: []RowAction{
				{Name: models.ActionEdit, Label: "Edit", Ref: ref},
				{Name: models.ActionDelete, Label: "Delete", Ref: ref},
			},
		})
	}
	return t
}

// BillingTable renders the billing list with amounts, plus view-info
// and delete actions.
func (r *Renderer) BillingTable(rows []models.Customer) *Table {
	t := &Table{
		ID:      "billingTable",
		Title:   "Billing",
		Columns: []string{"Property", "Customer", "Amount", "Contact", "Date"},
	}
	for _, c := range rows {
		ref := RecordRef{Resource: models.ResourceBilling, ID: c.ID}
		t.Rows = append(t.Rows, &Row{
			Ref: ref,
			Cells: []Cell{
				{Text: c.Property},
				{Text: c.Name},
				{Text: r.FormatPrice(c.Price)},
				{Text: c.Contact},
				{Text: c.Date},
			},
			Actions: []RowAction{
				{Name: models.ActionInfo, Label: "View Info", Ref: ref},
				{Name: models.ActionDelete, Label: "Delete", Ref: ref},
			},
		})
	}
	return t
}
