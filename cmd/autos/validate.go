package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Lint the effective configuration and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.check(cmd); err != nil {
				return err
			}
			where := a.cfgFile
			if where == "" {
				where = "defaults"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "configuration is valid: %s\n", where)
			return err
		},
	}
}
