package main

import (
	"fmt"
	"strings"

	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/wizard"
	"github.com/spf13/cobra"
)

// runRegisterForm is a test hook for replacing the interactive form.
var runRegisterForm = wizard.RunRegisterForm

func newRegisterCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [index] [name...]",
		Short: "Register a new student",
		Long: `Register a new student and append them to the roster.

With no arguments an interactive form asks for the index number and name.
The index is the first argument; the remaining arguments form the name.`,
		Example: `  rollcall register S1 Alice Smith
  rollcall register`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var s models.Student
			if len(args) > 0 {
				s = wizard.Normalize(models.Student{Index: args[0], Name: strings.Join(args[1:], " ")})
			} else {
				var err error
				s, err = runRegisterForm(cmd.InOrStdin(), cmd.OutOrStdout(), models.Student{})
				if err != nil {
					return err
				}
			}

			return withApp(opts, func(a *app) error {
				if err := a.roster.Append(s); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Student %s registered and saved successfully.\n", s.Index) //nolint:errcheck
				return nil
			})
		},
	}

	return cmd
}
