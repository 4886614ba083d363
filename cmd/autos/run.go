package main

import (
	"github.com/spf13/cobra"

	"autos/internal/pipeline"
	"autos/internal/report"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		src     sourceFlags
		top     int
		groupBy string
		sortBy  string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Clean the export and print mean price and mileage per group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.apply(cmd, args, &a.cfg)
			f := cmd.Flags()
			if f.Changed("top") {
				a.cfg.Aggregate.Top = top
			}
			if f.Changed("group-by") {
				a.cfg.Aggregate.GroupBy = groupBy
			}
			if f.Changed("sort") {
				a.cfg.Aggregate.Sort = sortBy
			}
			if f.Changed("format") {
				a.cfg.Report.Format = format
			}
			if err := a.check(cmd); err != nil {
				return err
			}

			p := pipeline.New(a.cfg)
			flush := a.setupMetrics(p.RunID)
			defer flush()

			res, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmtName, err := report.ParseFormat(a.cfg.Report.Format)
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), res.Document(), fmtName)
		},
	}
	src.bind(cmd)
	f := cmd.Flags()
	f.IntVar(&top, "top", 6, "number of most frequent groups to report (0 = all)")
	f.StringVar(&groupBy, "group-by", "brand", "categorical column to group by")
	f.StringVar(&sortBy, "sort", "price", "report order: count, key, price or mileage")
	f.StringVar(&format, "format", "table", "output format: table, json or yaml")
	return cmd
}
