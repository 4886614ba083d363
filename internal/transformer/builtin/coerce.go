// Package builtin contains the concrete cleaning stages of the listing
// pipeline: column coercion and the outlier filters.
package builtin

import (
	"fmt"

	"autos/internal/listing"
	"autos/internal/parser/csv"
	"autos/internal/parser/ints"
)

// Cleaning rules for the two numeric-as-text columns of the export.
var (
	priceStripper    = ints.Stripper{"$", ","}
	odometerStripper = ints.Stripper{"km", ","}
)

// CleanPrice parses a price such as "$5,000". Clean digit text parses to
// itself, so the function is idempotent on its own output.
func CleanPrice(s string) (int, error) { return priceStripper.Parse(s) }

// CleanOdometer parses a mileage such as "150,000km".
func CleanOdometer(s string) (int, error) { return odometerStripper.Parse(s) }

// sourceName is the normalized raw header a typed column is read from.
// The odometer gains its unit in the typed name.
func sourceName(c listing.Column) string {
	if c == listing.OdometerKM {
		return "odometer"
	}
	return c.String()
}

// CoerceError reports that a column could not be converted. Row is the
// 1-based data row of the first failure and Count the number of failing rows.
type CoerceError struct {
	Column string
	Row    int
	Value  string
	Count  int
	Err    error
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("column %s: %d unparsable value(s), first at row %d (%q): %v",
		e.Column, e.Count, e.Row, e.Value, e.Err)
}

func (e *CoerceError) Unwrap() error { return e.Err }

// Coerce turns a normalized raw table into the typed Listing Table. Integer
// columns are converted a whole column at a time; one bad value fails that
// column and the run. Raw columns outside the typed set are ignored.
type Coerce struct{}

// Apply converts raw into a listing.Table.
func (Coerce) Apply(raw csv.Table) (listing.Table, error) {
	rows := make([]listing.Listing, len(raw.Rows))
	for _, col := range listing.Columns() {
		idx := raw.Index(sourceName(col))
		if idx < 0 {
			return listing.Table{}, fmt.Errorf("coerce: column %q not found", sourceName(col))
		}
		if col.Kind() == listing.KindText {
			for r, row := range raw.Rows {
				rows[r].SetText(col, row[idx])
			}
			continue
		}
		vals, err := coerceColumn(raw.Rows, idx, parserFor(col))
		if err != nil {
			err.Column = sourceName(col)
			return listing.Table{}, err
		}
		for r, v := range vals {
			rows[r].SetInt(col, v)
		}
	}
	return listing.NewTable(rows), nil
}

func parserFor(c listing.Column) func(string) (int, error) {
	switch c {
	case listing.Price:
		return CleanPrice
	case listing.OdometerKM:
		return CleanOdometer
	default:
		return func(s string) (int, error) { return ints.Clean(s) }
	}
}

func coerceColumn(rows [][]string, idx int, parse func(string) (int, error)) ([]int, *CoerceError) {
	out := make([]int, len(rows))
	var cerr *CoerceError
	for r, row := range rows {
		v, err := parse(row[idx])
		if err != nil {
			if cerr == nil {
				cerr = &CoerceError{Row: r + 1, Value: row[idx], Err: err}
			}
			cerr.Count++
			continue
		}
		out[r] = v
	}
	if cerr != nil {
		return nil, cerr
	}
	return out, nil
}
