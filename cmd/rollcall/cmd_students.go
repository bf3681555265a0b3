package main

import (
	"github.com/microsoft/rollcall/internal/roster"
	"github.com/spf13/cobra"
)

func newStudentsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "students",
		Short: "List registered students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				roster.Render(cmd.OutOrStdout(), a.roster.Students())
				return nil
			})
		},
	}
}
