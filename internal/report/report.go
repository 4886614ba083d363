// Package report renders the per-group summary for humans and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gopkg.in/yaml.v3"

	"autos/internal/aggregate"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format is an output format name.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat resolves a format name; empty means FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Document is what gets rendered: the grouping column and its groups.
type Document struct {
	GroupBy string           `json:"group_by" yaml:"group_by"`
	Groups  aggregate.Groups `json:"groups" yaml:"groups"`
}

// Render writes doc to w in the given format.
func Render(w io.Writer, doc Document, f Format) error {
	switch f {
	case FormatTable, "":
		return WriteFrame(w, Frame(doc))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Frame lays the groups out as a DataFrame keyed by the group column with
// mean_price and mean_mileage columns.
func Frame(doc Document) dataframe.DataFrame {
	keys := make([]string, len(doc.Groups))
	price := make([]int, len(doc.Groups))
	km := make([]int, len(doc.Groups))
	for i, g := range doc.Groups {
		keys[i] = g.Key
		price[i] = g.MeanPrice
		km[i] = g.MeanMileage
	}
	name := doc.GroupBy
	if name == "" {
		name = "key"
	}
	return dataframe.New(
		series.New(keys, series.String, name),
		series.New(price, series.Int, "mean_price"),
		series.New(km, series.Int, "mean_mileage"),
	)
}

// WriteFrame prints every row of df as an aligned table, header first.
func WriteFrame(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return df.Err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, rec := range df.Records() {
		if _, err := fmt.Fprintln(tw, strings.Join(rec, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
