package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"

	"autos/internal/inspect"
	"autos/internal/listing"
	"autos/internal/report"
	"autos/internal/transformer/builtin"
)

// exploreTop is how many rows the value-count views print.
const exploreTop = 20

var describeColumns = []listing.Column{listing.Price, listing.OdometerKM, listing.RegistrationYear}

// Explore prints the views used to pick the outlier bounds: raw fill counts,
// the head of the typed table, and summary statistics plus the highest
// prices and registration years, before and after filtering.
func (p *Pipeline) Explore(ctx context.Context, w io.Writer) error {
	raw, err := p.Load(ctx)
	if err != nil {
		return err
	}
	if err := section(w, "info", inspect.InfoFrame(inspect.Info(raw))); err != nil {
		return err
	}
	tbl, err := p.Typed(ctx, raw)
	if err != nil {
		return err
	}
	if err := section(w, "head", inspect.Head(tbl, 5, listing.Brand, listing.Price, listing.OdometerKM, listing.RegistrationYear)); err != nil {
		return err
	}
	if err := p.exploreTable(w, "before filtering", tbl); err != nil {
		return err
	}
	out, dropped := p.Filter(tbl)
	for _, name := range []string{builtin.PriceCeiling{}.Name(), builtin.YearRange{}.Name()} {
		if _, err := fmt.Fprintf(w, "dropped by %s: %d\n", name, dropped[name]); err != nil {
			return err
		}
	}
	return p.exploreTable(w, "after filtering", out)
}

func (p *Pipeline) exploreTable(w io.Writer, label string, tbl listing.Table) error {
	r, c := tbl.Shape()
	if _, err := fmt.Fprintf(w, "\n# %s: shape=(%d, %d)\n", label, r, c); err != nil {
		return err
	}
	sums, err := inspect.Describe(tbl, describeColumns...)
	if err != nil {
		return err
	}
	if err := section(w, "describe", inspect.SummaryFrame(sums)); err != nil {
		return err
	}
	prices := inspect.ValueCounts(tbl, listing.Price).ByValueDesc().Head(exploreTop)
	if err := section(w, "top prices", prices.Frame()); err != nil {
		return err
	}
	years := inspect.ValueCounts(tbl, listing.RegistrationYear).ByValueDesc().Head(exploreTop)
	return section(w, "top registration years", years.Frame())
}

func section(w io.Writer, title string, df dataframe.DataFrame) error {
	if _, err := fmt.Fprintf(w, "\n== %s ==\n", title); err != nil {
		return err
	}
	return report.WriteFrame(w, df)
}
