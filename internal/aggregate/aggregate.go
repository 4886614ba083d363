// Package aggregate groups a cleaned listing table by a categorical column
// and summarizes each group.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"autos/internal/listing"
)

// ErrNotCategorical is returned when grouping by an integer column.
var ErrNotCategorical = errors.New("aggregate: column is not categorical")

// Count is one category and its number of rows.
type Count struct {
	Key string `json:"key" yaml:"key"`
	N   int    `json:"count" yaml:"count"`
}

// TopCategories ranks the values of col by frequency, most frequent first.
// Ties keep the order in which the values first appear. n <= 0 keeps all.
func TopCategories(t listing.Table, col listing.Column, n int) ([]Count, error) {
	vals, err := categorical(t, col)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int)
	var counts []Count
	for _, v := range vals {
		i, ok := idx[v]
		if !ok {
			i = len(counts)
			idx[v] = i
			counts = append(counts, Count{Key: v})
		}
		counts[i].N++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].N > counts[j].N })
	if n > 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts, nil
}

func categorical(t listing.Table, col listing.Column) ([]string, error) {
	if col.Kind() != listing.KindText {
		return nil, fmt.Errorf("%w: %s", ErrNotCategorical, col)
	}
	return t.Texts(col)
}

// Group is the summary of one category.
type Group struct {
	Key         string `json:"key" yaml:"key"`
	Count       int    `json:"count" yaml:"count"`
	MeanPrice   int    `json:"mean_price" yaml:"mean_price"`
	MeanMileage int    `json:"mean_mileage" yaml:"mean_mileage"`
}

// Groups is an ordered aggregation result.
type Groups []Group

// ByCategory summarizes the n most frequent values of col with their mean
// price and mean odometer reading, rounded half to even. The result is in
// frequency order.
func ByCategory(t listing.Table, col listing.Column, n int) (Groups, error) {
	top, err := TopCategories(t, col, n)
	if err != nil {
		return nil, err
	}
	type sums struct{ price, km int }
	acc := make(map[string]*sums, len(top))
	for _, c := range top {
		acc[c.Key] = &sums{}
	}
	for i := range t.Rows {
		key, _ := t.Rows[i].Text(col)
		s, ok := acc[key]
		if !ok {
			continue
		}
		s.price += t.Rows[i].Price
		s.km += t.Rows[i].OdometerKM
	}
	out := make(Groups, len(top))
	for i, c := range top {
		s := acc[c.Key]
		out[i] = Group{
			Key:         c.Key,
			Count:       c.N,
			MeanPrice:   mean(s.price, c.N),
			MeanMileage: mean(s.km, c.N),
		}
	}
	return out, nil
}

func mean(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(sum) / float64(n)))
}

// Order selects how Groups are sorted for reporting.
type Order string

const (
	ByCount       Order = "count"
	ByKey         Order = "key"
	ByMeanPrice   Order = "price"
	ByMeanMileage Order = "mileage"
)

// ParseOrder resolves an order name; empty means ByCount.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return ByCount, nil
	case ByCount, ByKey, ByMeanPrice, ByMeanMileage:
		return o, nil
	}
	return "", fmt.Errorf("aggregate: unknown sort order %q", s)
}

// SortByKey sorts g by key ascending, in place.
func (g Groups) SortByKey() { g.SortBy(ByKey) }

// SortBy sorts g in place. Count sorts descending, the others ascending;
// equal elements keep their relative order.
func (g Groups) SortBy(o Order) {
	var less func(a, b Group) bool
	switch o {
	case ByKey:
		less = func(a, b Group) bool { return a.Key < b.Key }
	case ByMeanPrice:
		less = func(a, b Group) bool { return a.MeanPrice < b.MeanPrice }
	case ByMeanMileage:
		less = func(a, b Group) bool { return a.MeanMileage < b.MeanMileage }
	default:
		less = func(a, b Group) bool { return a.Count > b.Count }
	}
	sort.SliceStable(g, func(i, j int) bool { return less(g[i], g[j]) })
}

// Keys returns the group keys in order.
func (g Groups) Keys() []string {
	out := make([]string, len(g))
	for i, x := range g {
		out[i] = x.Key
	}
	return out
}
