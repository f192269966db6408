package view

import (
	"testing"

	"rentadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	r := NewRenderer("₹")
	assert.Equal(t, "₹500", r.FormatPrice(500))
	assert.Equal(t, "₹499.5", r.FormatPrice(499.5))

	r = NewRenderer("$")
	assert.Equal(t, "$500", r.FormatPrice(500))

	// Empty glyph falls back to the default.
	r = NewRenderer("")
	assert.Equal(t, "₹500", r.FormatPrice(500))
}

func TestPropertyTable(t *testing.T) {
	r := NewRenderer("₹")
	tbl := r.PropertyTable([]models.Property{
		{ID: 7, Title: "Flat 2B", Price: 500, Status: models.StatusAvailable},
		{ID: 9, Title: "Villa", Price: 2200, Status: models.StatusRented},
	})

	assert.Equal(t, "propTable", tbl.ID)
	assert.Equal(t, []string{"#", "Title", "Rent", "Status"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)

	first := tbl.Rows[0]
	assert.Equal(t, []string{"1", "Flat 2B", "₹500", "available"},
		[]string{first.Cells[0].Text, first.Cells[1].Text, first.Cells[2].Text, first.Cells[3].Text})
	assert.Equal(t, models.StatusAvailable, first.Cells[3].Tag)
	assert.Equal(t, int64(7), first.Ref.ID)
	assert.Equal(t, models.ResourceProperties, first.Ref.Resource)

	require.Len(t, first.Actions, 2)
	assert.Equal(t, models.ActionInfo, first.Actions[0].Name)
	assert.Equal(t, models.ActionDelete, first.Actions[1].Name)

	// The position column counts render order, not record IDs.
	assert.Equal(t, "2", tbl.Rows[1].Cells[0].Text)
}

func TestCustomerTable(t *testing.T) {
	r := NewRenderer("₹")
	tbl := r.CustomerTable([]models.Customer{
		{ID: 3, Name: "Asha", Contact: "555-0101", Property: "Flat 2B", Date: "2026-09-01"},
	})

	assert.Equal(t, "custTable", tbl.ID)
	require.Len(t, tbl.Rows, 1)
	row := tbl.Rows[0]
	assert.Equal(t, "Asha", row.Cells[0].Text)
	assert.Equal(t, models.ResourceBilling, row.Ref.Resource)
	require.Len(t, row.Actions, 2)
	assert.Equal(t, models.ActionEdit, row.Actions[0].Name)
	assert.Equal(t, models.ActionDelete, row.Actions[1].Name)
}

func TestBillingTableFormatsAmount(t *testing.T) {
	r := NewRenderer("₹")
	tbl := r.BillingTable([]models.Customer{
		{ID: 3, Name: "Asha", Contact: "555-0101", Property: "Flat 2B", Price: 500, Date: "2026-09-01"},
	})

	assert.Equal(t, "billingTable", tbl.ID)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "₹500", tbl.Rows[0].Cells[2].Text)
	assert.Equal(t, models.ActionInfo, tbl.Rows[0].Actions[0].Name)
}

func TestRowTextJoinsCells(t *testing.T) {
	row := &Row{Cells: []Cell{{Text: "Asha"}, {Text: "Flat 2B"}}}
	assert.Equal(t, "Asha Flat 2B", row.Text())
}

func TestToggleSort(t *testing.T) {
	tbl := &Table{}
	assert.True(t, tbl.ToggleSort(), "first toggle is ascending")
	assert.False(t, tbl.ToggleSort())
	assert.True(t, tbl.ToggleSort())
}

func TestColumnTextsSkipsOutOfRange(t *testing.T) {
	tbl := &Table{Rows: []*Row{
		{Cells: []Cell{{Text: "a"}, {Text: "b"}}},
		{Cells: []Cell{{Text: "c"}}},
	}}
	assert.Equal(t, []string{"b"}, tbl.ColumnTexts(1))
}
