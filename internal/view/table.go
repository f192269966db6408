package view

import "strings"

// RecordRef identifies one store record from a rendered row.
type RecordRef struct {
	Resource string
	ID       int64
}

// RowAction is a typed intent attached to a row. The renderer never
// embeds handler markup; the server's dispatch table resolves the name.
type RowAction struct {
	Name  string
	Label string
	Ref   RecordRef
}

// Cell is one rendered value. Tag carries a stylesheet hook (the status
// value) when the cell is conditionally styled.
type Cell struct {
	Text string
	Tag  string
}

// Row is the ephemeral view of one record. Hidden rows stay in the
// table so clearing a filter restores them.
type Row struct {
	Cells   []Cell
	Actions []RowAction
	Hidden  bool
	Ref     RecordRef
}

// Text returns the row's full rendered text, the way list controls and
// filters see it.
func (r *Row) Text() string {
	parts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}

// Table is a rebuilt-from-scratch view of one record collection. Every
// build discards prior rows; there is no incremental patching.
type Table struct {
	ID      string
	Title   string
	Columns []string
	Rows    []*Row

	// Sort direction state lives on the table itself and toggles on
	// each successive sort call.
	sortAsc bool
}

// ToggleSort flips the table's sort direction and reports the new one.
// The first call yields ascending.
func (t *Table) ToggleSort() bool {
	t.sortAsc = !t.sortAsc
	return t.sortAsc
}

// VisibleRows returns the rows a filter has not hidden, in current
// order.
func (t *Table) VisibleRows() []*Row {
	out := make([]*Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !r.Hidden {
			out = append(out, r)
		}
	}
	return out
}

// ColumnTexts returns the text of column col for every row, hidden
// ones included.
func (t *Table) ColumnTexts(col int) []string {
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		if col < len(r.Cells) {
			out = append(out, r.Cells[col].Text)
		}
	}
	return out
}
