package main

import (
	"time"

	"github.com/microsoft/rollcall/internal/prompt"
	"github.com/microsoft/rollcall/internal/workflow"
	"github.com/spf13/cobra"
)

// markClock is a test hook for the session date. nil uses the system clock.
var markClock func() time.Time

func newMarkCommand(opts *globalOptions) *cobra.Command {
	var details workflow.Details

	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Mark attendance for a new lecture session",
		Long: `Mark attendance for every registered student.

Session details not given as flags are prompted for. Each student's status
is read as P (present), A (absent) or L (late). The session is saved as
session_<course>_<date>.txt using today's date; marking the same course twice
on one day replaces the earlier session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
				res, err := workflow.New(a.roster, a.store, p, markClock).Mark(details)
				if err != nil {
					return err
				}
				return res.SaveErr
			})
		},
	}

	cmd.Flags().StringVar(&details.CourseCode, "course", "", "Course code (e.g. EEE227)")
	cmd.Flags().StringVar(&details.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&details.Duration, "duration", "", "Duration in hours")

	return cmd
}
