package main

import (
	"fmt"

	"github.com/microsoft/rollcall/internal/report"
	"github.com/spf13/cobra"
)

func newSessionsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List and view recorded sessions",
		Long: `List and view recorded attendance sessions.

Sessions are stored as session_<course>_<date>.txt, one per course per day.`,
	}

	cmd.AddCommand(newSessionsListCommand(opts))
	cmd.AddCommand(newSessionsViewCommand(opts))

	return cmd
}

func newSessionsListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded session files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				ids, err := report.NewEngine(a.store).ListSessionFiles()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(ids) == 0 {
					fmt.Fprintln(out, "No session files found.") //nolint:errcheck
					return nil
				}
				for _, id := range ids {
					fmt.Fprintln(out, id) //nolint:errcheck
				}
				return nil
			})
		},
	}
}

func newSessionsViewCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view <session-file>",
		Short: "View one session's records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				s, err := report.NewEngine(a.store).ParseSession(args[0])
				if err != nil {
					return fmt.Errorf("reading session: %w", err)
				}
				report.RenderSessionDetail(cmd.OutOrStdout(), s, a.roster.Students())
				return nil
			})
		},
	}
}
