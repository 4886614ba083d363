package main

import (
	"github.com/spf13/cobra"

	"autos/internal/fixture"
)

func newSampleCmd() *cobra.Command {
	var opt fixture.Options
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic listing export to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fixture.Write(cmd.OutOrStdout(), opt)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opt.Rows, "rows", 1000, "number of listings")
	f.Int64Var(&opt.Seed, "seed", 1, "random seed")
	f.IntVar(&opt.Outliers, "outliers", 0, "rows carrying an implausible price or registration year")
	return cmd
}
