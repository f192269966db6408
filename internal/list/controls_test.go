package list

import (
	"testing"

	"rentadmin/internal/models"
	"rentadmin/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *view.Table {
	r := view.NewRenderer("₹")
	return r.PropertyTable([]models.Property{
		{ID: 1, Title: "Garden Villa", Price: 2200, Status: models.StatusRented},
		{ID: 2, Title: "Flat 2B", Price: 500, Status: models.StatusAvailable},
		{ID: 3, Title: "Studio 7", Price: 900, Status: models.StatusAvailable},
	})
}

func TestFilterEmptyQueryShowsAll(t *testing.T) {
	tbl := testTable()
	visible := Filter(tbl, "")
	assert.Equal(t, 3, visible)
	assert.Len(t, tbl.VisibleRows(), 3)
}

func TestFilterMatchesAnyColumnCaseInsensitive(t *testing.T) {
	tbl := testTable()

	visible := Filter(tbl, "FLAT")
	assert.Equal(t, 1, visible)
	require.Len(t, tbl.VisibleRows(), 1)
	assert.Equal(t, "Flat 2B", tbl.VisibleRows()[0].Cells[1].Text)

	// Status column text matches too: filtering sees the full row text.
	visible = Filter(tbl, "available")
	assert.Equal(t, 2, visible)
}

func TestFilterNoMatchHidesAllAndClears(t *testing.T) {
	tbl := testTable()

	assert.Equal(t, 0, Filter(tbl, "no such thing"))
	assert.Empty(t, tbl.VisibleRows())
	assert.Len(t, tbl.Rows, 3, "hidden rows are kept, not removed")

	assert.Equal(t, 3, Filter(tbl, ""))
	assert.Len(t, tbl.VisibleRows(), 3)
}

func TestSortNumericAware(t *testing.T) {
	r := view.NewRenderer("₹")
	tbl := r.PropertyTable([]models.Property{
		{ID: 1, Title: "2", Price: 1, Status: models.StatusAvailable},
		{ID: 2, Title: "10", Price: 1, Status: models.StatusAvailable},
		{ID: 3, Title: "1", Price: 1, Status: models.StatusAvailable},
	})

	asc := Sort(tbl, 1)
	assert.True(t, asc, "first sort is ascending")
	assert.Equal(t, []string{"1", "2", "10"}, tbl.ColumnTexts(1),
		"numeric-aware compare, not lexicographic")
}

func TestSortToggleIsTwoCycle(t *testing.T) {
	tbl := testTable()

	Sort(tbl, 1)
	first := tbl.ColumnTexts(1)

	asc := Sort(tbl, 1)
	assert.False(t, asc)
	second := tbl.ColumnTexts(1)
	assert.Equal(t, reversed(first), second)

	asc = Sort(tbl, 1)
	assert.True(t, asc)
	assert.Equal(t, first, tbl.ColumnTexts(1))
}

func TestSortReordersHiddenRowsToo(t *testing.T) {
	tbl := testTable()
	Filter(tbl, "available")
	Sort(tbl, 1) // ascending by title

	// All rows reordered, hidden one included.
	assert.Equal(t, []string{"Flat 2B", "Garden Villa", "Studio 7"}, tbl.ColumnTexts(1))

	visible := tbl.VisibleRows()
	require.Len(t, visible, 2)
	assert.Equal(t, "Flat 2B", visible[0].Cells[1].Text)
	assert.Equal(t, "Studio 7", visible[1].Cells[1].Text)
}

func TestSortByPriceColumnWithGlyph(t *testing.T) {
	tbl := testTable()
	Sort(tbl, 2) // rent column, values like ₹500
	assert.Equal(t, []string{"₹500", "₹900", "₹2200"}, tbl.ColumnTexts(2))
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
