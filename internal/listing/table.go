package listing

import "fmt"

// Table is the in-memory Listing Table. Columns is fixed once the table is
// built; Rows only ever shrinks.
type Table struct {
	Columns []Column
	Rows    []Listing
}

// NewTable returns a table over rows with the full column set.
func NewTable(rows []Listing) Table {
	return Table{Columns: Columns(), Rows: rows}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Shape returns (rows, columns) like a dataframe.
func (t Table) Shape() (int, int) { return len(t.Rows), len(t.Columns) }

// Has reports whether c is part of the table's column set.
func (t Table) Has(c Column) bool {
	for _, x := range t.Columns {
		if x == c {
			return true
		}
	}
	return false
}

// Filter keeps the rows for which keep returns true. It reuses the backing
// array of t.Rows, so the input table must not be used afterwards.
func (t Table) Filter(keep func(*Listing) bool) Table {
	out := t.Rows[:0]
	for i := range t.Rows {
		if keep(&t.Rows[i]) {
			out = append(out, t.Rows[i])
		}
	}
	// Clear the tail so dropped rows are not retained by the backing array.
	for i := len(out); i < len(t.Rows); i++ {
		t.Rows[i] = Listing{}
	}
	return Table{Columns: t.Columns, Rows: out}
}

// Head returns a table over the first n rows (all rows when n exceeds Len).
func (t Table) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// Ints returns the values of an integer column in row order.
func (t Table) Ints(c Column) ([]int, error) {
	if c.Kind() != KindInt {
		return nil, fmt.Errorf("listing: column %s is %s, not int", c, c.Kind())
	}
	out := make([]int, len(t.Rows))
	for i := range t.Rows {
		out[i], _ = t.Rows[i].Int(c)
	}
	return out, nil
}

// Texts returns the values of a text column in row order.
func (t Table) Texts(c Column) ([]string, error) {
	if c.Kind() != KindText {
		return nil, fmt.Errorf("listing: column %s is %s, not text", c, c.Kind())
	}
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i], _ = t.Rows[i].Text(c)
	}
	return out, nil
}
