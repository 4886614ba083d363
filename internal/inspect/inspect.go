// Package inspect implements the exploration views used to choose the
// cleaning rules: per-column fill counts of the raw table, summary statistics
// of the integer columns and value frequencies.
//
// Summaries are computed through gota series so the numbers match what a
// dataframe user would see for the same data.
package inspect

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/series"

	"autos/internal/listing"
	"autos/internal/parser/csv"
)

// ErrNotNumeric is returned by Describe for text columns.
var ErrNotNumeric = errors.New("inspect: column is not numeric")

// ColumnInfo is the fill count of one raw column.
type ColumnInfo struct {
	Name     string `json:"name"`
	NonEmpty int    `json:"non_empty"`
	Rows     int    `json:"rows"`
}

// Info counts the non-empty cells of every raw column, in header order.
func Info(raw csv.Table) []ColumnInfo {
	out := make([]ColumnInfo, len(raw.Header))
	for i, h := range raw.Header {
		out[i] = ColumnInfo{Name: h, Rows: len(raw.Rows)}
	}
	for _, row := range raw.Rows {
		for i := range out {
			if i < len(row) && row[i] != "" {
				out[i].NonEmpty++
			}
		}
	}
	return out
}

// Summary holds the descriptive statistics of one integer column.
type Summary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe summarizes the given integer columns; with no columns it
// summarizes every integer column of t. An empty table yields zero-valued
// summaries with Count 0.
func Describe(t listing.Table, cols ...listing.Column) ([]Summary, error) {
	if len(cols) == 0 {
		for _, c := range t.Columns {
			if c.Kind() == listing.KindInt {
				cols = append(cols, c)
			}
		}
	}
	out := make([]Summary, 0, len(cols))
	for _, c := range cols {
		vals, err := t.Ints(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotNumeric, c)
		}
		sum := Summary{Column: c.String(), Count: len(vals)}
		if len(vals) > 0 {
			s := series.Ints(vals)
			sum.Mean = s.Mean()
			sum.Std = s.StdDev()
			sum.Min = s.Min()
			sum.Q25 = s.Quantile(0.25)
			sum.Median = s.Quantile(0.5)
			sum.Q75 = s.Quantile(0.75)
			sum.Max = s.Max()
		}
		out = append(out, sum)
	}
	return out, nil
}

// ValueCount is one distinct value and how many rows hold it.
type ValueCount struct {
	Value string `json:"value"`
	N     int    `json:"count"`
}

// Counts is the value frequency table of a column.
type Counts struct {
	Column listing.Column
	Items  []ValueCount
}

// ValueCounts tallies the values of col, most frequent first.
func ValueCounts(t listing.Table, col listing.Column) Counts {
	idx := make(map[string]int)
	var items []ValueCount
	for i := range t.Rows {
		v := cell(&t.Rows[i], col)
		j, ok := idx[v]
		if !ok {
			j = len(items)
			idx[v] = j
			items = append(items, ValueCount{Value: v})
		}
		items[j].N++
	}
	c := Counts{Column: col, Items: items}
	return c.ByCount()
}

func cell(l *listing.Listing, col listing.Column) string {
	if col.Kind() == listing.KindInt {
		v, _ := l.Int(col)
		return strconv.Itoa(v)
	}
	v, _ := l.Text(col)
	return v
}

// ByCount returns a copy ordered by count descending.
func (c Counts) ByCount() Counts {
	items := append([]ValueCount(nil), c.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].N > items[j].N })
	return Counts{Column: c.Column, Items: items}
}

// ByValueDesc returns a copy ordered by value descending; integer columns
// compare numerically.
func (c Counts) ByValueDesc() Counts {
	items := append([]ValueCount(nil), c.Items...)
	less := func(a, b string) bool { return a > b }
	if c.Column.Kind() == listing.KindInt {
		less = func(a, b string) bool {
			x, _ := strconv.Atoi(a)
			y, _ := strconv.Atoi(b)
			return x > y
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i].Value, items[j].Value) })
	return Counts{Column: c.Column, Items: items}
}

// Head keeps the first n entries.
func (c Counts) Head(n int) Counts {
	if n >= 0 && n < len(c.Items) {
		return Counts{Column: c.Column, Items: c.Items[:n]}
	}
	return c
}
