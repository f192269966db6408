// Package list implements the filter and sort controls for rendered
// tables. Both operate on the structured table, not on re-parsed
// markup, so locale formatting never round-trips through text twice.
package list

import (
	"sort"
	"strings"

	"rentadmin/internal/view"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter hides rows whose rendered text does not contain query,
// case-insensitively. Hidden rows stay in the table; an empty query
// restores everything. Returns the number of visible rows.
func Filter(t *view.Table, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	visible := 0
	for _, row := range t.Rows {
		row.Hidden = q != "" && !strings.Contains(strings.ToLower(row.Text()), q)
		if !row.Hidden {
			visible++
		}
	}
	return visible
}

// Sort orders rows by the text of column col, toggling direction on
// each successive call on the same table. The first call sorts
// ascending. Hidden rows reorder along with visible ones. Returns true
// when the resulting order is ascending.
func Sort(t *view.Table, col int) bool {
	asc := t.ToggleSort()
	SortDirection(t, col, asc)
	return asc
}

// SortDirection orders rows by column col in the given direction,
// without touching the table's toggle state. Comparison is stable,
// case-insensitive and numeric-aware, so "2" sorts before "10".
func SortDirection(t *view.Table, col int, ascending bool) {
	cl := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(t.Rows, func(i, j int) bool {
		cmp := cl.CompareString(cellText(t.Rows[i], col), cellText(t.Rows[j], col))
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
}

func cellText(r *view.Row, col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col].Text
}
