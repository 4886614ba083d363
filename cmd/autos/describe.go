package main

import (
	"github.com/spf13/cobra"

	"autos/internal/pipeline"
)

func newDescribeCmd(a *app) *cobra.Command {
	var src sourceFlags
	cmd := &cobra.Command{
		Use:   "describe [path]",
		Short: "Print column fill counts, statistics and value counts before and after filtering",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.apply(cmd, args, &a.cfg)
			if err := a.check(cmd); err != nil {
				return err
			}
			return pipeline.New(a.cfg).Explore(cmd.Context(), cmd.OutOrStdout())
		},
	}
	src.bind(cmd)
	return cmd
}
