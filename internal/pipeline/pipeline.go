// Package pipeline wires the stages of a run together: load, normalize,
// coerce, filter and aggregate. Each stage takes the previous stage's output
// explicitly; nothing is shared between runs.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"autos/internal/aggregate"
	"autos/internal/config"
	"autos/internal/datasource"
	"autos/internal/datasource/file"
	"autos/internal/datasource/httpds"
	"autos/internal/listing"
	"autos/internal/metrics"
	"autos/internal/parser/csv"
	"autos/internal/report"
	"autos/internal/schema"
	"autos/internal/transformer/builtin"
)

// Pipeline is one configured run.
type Pipeline struct {
	Config config.Pipeline
	RunID  string
	Source datasource.Source
}

// New returns a Pipeline with a fresh run id. The source is downloaded when
// its path is an http(s) URL and read from disk otherwise.
func New(cfg config.Pipeline) *Pipeline {
	var src datasource.Source = file.NewLocal(cfg.Source.Path, cfg.Source.Encoding)
	if httpds.IsURL(cfg.Source.Path) {
		src = httpds.NewSource(cfg.Source.Path, cfg.Source.Encoding, nil)
	}
	return &Pipeline{Config: cfg, RunID: uuid.NewString(), Source: src}
}

// Result is everything a run produced.
type Result struct {
	RunID       string
	Fingerprint uint64
	Loaded      int
	Skipped     int
	// Dropped counts rows removed by each outlier filter, keyed by filter name.
	Dropped map[string]int
	Table   listing.Table
	GroupBy listing.Column
	Groups  aggregate.Groups
}

// Document returns the report view of the result.
func (r Result) Document() report.Document {
	return report.Document{GroupBy: r.GroupBy.String(), Groups: r.Groups}
}

// Run executes every stage and returns the aggregated groups.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	log.Printf("run %s: start source=%s", p.RunID, p.Config.Source.Path)

	res := Result{RunID: p.RunID}
	raw, err := p.Load(ctx)
	if err != nil {
		return res, err
	}
	res.Loaded, res.Skipped = len(raw.Rows), raw.Skipped
	res.Fingerprint = p.fingerprint()

	tbl, err := p.Typed(ctx, raw)
	if err != nil {
		return res, err
	}
	res.Table, res.Dropped = p.Filter(tbl)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	done := metrics.Stage(p.Config.Job, "aggregate")
	res.GroupBy, res.Groups, err = p.Aggregate(res.Table)
	done(err)
	if err != nil {
		return res, err
	}
	metrics.RecordGroups(p.Config.Job, len(res.Groups))

	log.Printf("run %s: done rows=%d groups=%d fingerprint=%016x in %s",
		p.RunID, res.Table.Len(), len(res.Groups), res.Fingerprint, time.Since(start).Truncate(time.Millisecond))
	return res, nil
}

// Load opens the source and parses it into a raw table.
func (p *Pipeline) Load(ctx context.Context) (raw csv.Table, err error) {
	done := metrics.Stage(p.Config.Job, "load")
	defer func() { done(err) }()

	rc, err := p.Source.Open(ctx)
	if err != nil {
		return csv.Table{}, fmt.Errorf("load: %w", err)
	}
	defer rc.Close()

	parser := csv.NewParser(csv.Options{
		Comma:   p.Config.Source.CommaRune(),
		Lenient: p.Config.Source.Lenient,
	})
	raw, err = parser.Parse(rc)
	if err != nil {
		return csv.Table{}, fmt.Errorf("load: %s: %w", p.Config.Source.Path, err)
	}
	r, c := raw.Shape()
	log.Printf("load: rows=%d cols=%d skipped=%d", r, c, raw.Skipped)
	metrics.RecordRows(p.Config.Job, metrics.RowsLoaded, r)
	metrics.RecordRows(p.Config.Job, metrics.RowsSkipped, raw.Skipped)
	return raw, nil
}

// Typed normalizes the raw headers and coerces the result into a typed table.
func (p *Pipeline) Typed(ctx context.Context, raw csv.Table) (listing.Table, error) {
	if err := ctx.Err(); err != nil {
		return listing.Table{}, err
	}
	done := metrics.Stage(p.Config.Job, "normalize")
	policy, err := schema.ParseUnmappedPolicy(p.Config.Schema.Unmapped)
	if err == nil {
		raw, err = schema.NewNormalizer(policy).Apply(raw)
	}
	done(err)
	if err != nil {
		return listing.Table{}, fmt.Errorf("normalize: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return listing.Table{}, err
	}
	done = metrics.Stage(p.Config.Job, "coerce")
	tbl, err := builtin.Coerce{}.Apply(raw)
	done(err)
	if err != nil {
		return listing.Table{}, fmt.Errorf("coerce: %w", err)
	}
	return tbl, nil
}

// Filter removes outlier rows and reports how many each filter dropped.
// tbl must not be used afterwards.
func (p *Pipeline) Filter(tbl listing.Table) (listing.Table, map[string]int) {
	f := p.Config.Filter
	chain := builtin.Outliers(f.PriceMax, f.YearMin, f.YearMax)
	dropped := make(map[string]int, len(chain))

	done := metrics.Stage(p.Config.Job, "filter")
	out := chain.ApplyWith(tbl, func(name string, before, after int) {
		dropped[name] = before - after
	})
	done(nil)

	metrics.RecordRows(p.Config.Job, metrics.RowsDroppedPrice, dropped[builtin.PriceCeiling{}.Name()])
	metrics.RecordRows(p.Config.Job, metrics.RowsDroppedYear, dropped[builtin.YearRange{}.Name()])
	metrics.RecordRows(p.Config.Job, metrics.RowsRetained, out.Len())
	return out, dropped
}

// Aggregate groups tbl by the configured column and sorts the groups.
func (p *Pipeline) Aggregate(tbl listing.Table) (listing.Column, aggregate.Groups, error) {
	a := p.Config.Aggregate
	col, ok := listing.ParseColumn(a.GroupBy)
	if !ok {
		return 0, nil, fmt.Errorf("aggregate: unknown column %q", a.GroupBy)
	}
	order, err := aggregate.ParseOrder(a.Sort)
	if err != nil {
		return col, nil, err
	}
	groups, err := aggregate.ByCategory(tbl, col, a.Top)
	if err != nil {
		return col, nil, err
	}
	groups.SortBy(order)
	return col, groups, nil
}

func (p *Pipeline) fingerprint() uint64 {
	if s, ok := p.Source.(interface{ Sum64() uint64 }); ok {
		return s.Sum64()
	}
	return 0
}
