package inspect

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"autos/internal/listing"
)

// Frame builds a DataFrame over the given columns of t (all columns when
// none are given). Integer columns become Int series.
func Frame(t listing.Table, cols ...listing.Column) dataframe.DataFrame {
	if len(cols) == 0 {
		cols = t.Columns
	}
	ss := make([]series.Series, 0, len(cols))
	for _, c := range cols {
		if c.Kind() == listing.KindInt {
			vals, _ := t.Ints(c)
			ss = append(ss, series.New(vals, series.Int, c.String()))
			continue
		}
		vals, _ := t.Texts(c)
		ss = append(ss, series.New(vals, series.String, c.String()))
	}
	return dataframe.New(ss...)
}

// Head returns the first n rows of t as a DataFrame.
func Head(t listing.Table, n int, cols ...listing.Column) dataframe.DataFrame {
	return Frame(t.Head(n), cols...)
}

// InfoFrame renders Info output as a DataFrame.
func InfoFrame(info []ColumnInfo) dataframe.DataFrame {
	names := make([]string, len(info))
	filled := make([]int, len(info))
	for i, ci := range info {
		names[i] = ci.Name
		filled[i] = ci.NonEmpty
	}
	return dataframe.New(
		series.New(names, series.String, "column"),
		series.New(filled, series.Int, "non_empty"),
	)
}

// SummaryFrame lays the summaries out one row per statistic and one column
// per listing column, like a dataframe's describe().
func SummaryFrame(sums []Summary) dataframe.DataFrame {
	stats := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	ss := []series.Series{series.New(stats, series.String, "stat")}
	for _, s := range sums {
		vals := []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max}
		ss = append(ss, series.New(vals, series.Float, s.Column))
	}
	return dataframe.New(ss...)
}

// Frame renders the counts as a two-column DataFrame.
func (c Counts) Frame() dataframe.DataFrame {
	vals := make([]string, len(c.Items))
	ns := make([]int, len(c.Items))
	for i, it := range c.Items {
		vals[i] = it.Value
		ns[i] = it.N
	}
	return dataframe.New(
		series.New(vals, series.String, c.Column.String()),
		series.New(ns, series.Int, "count"),
	)
}
