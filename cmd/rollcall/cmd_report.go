package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/microsoft/rollcall/internal/report"
	"github.com/microsoft/rollcall/internal/statistics"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	student  string
	sessions bool
	strict   bool
	format   string
}

// jsonReport is the --format json document.
type jsonReport struct {
	Students []report.StudentSummary `json:"students"`
	Class    statistics.RateInterval `json:"class"`
	Sessions []jsonSession           `json:"sessions"`
	Skipped  []jsonSkipped           `json:"skipped,omitempty"`
}

type jsonSession struct {
	ID         string `json:"id"`
	CourseCode string `json:"course_code"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	Duration   string `json:"duration"`
	Records    int    `json:"records"`
}

type jsonSkipped struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

func newReportCommand(opts *globalOptions) *cobra.Command {
	ro := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize attendance from recorded sessions",
		Long: `Summarize attendance across every recorded session file.

Session files that cannot be parsed are skipped with a warning. Use --strict
to make the command fail (exit code 1) when any file was skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app) error {
				if !cmd.Flags().Changed("sessions") {
					ro.sessions = *a.cfg.Report.ShowSessions
				}

				res, err := report.NewEngine(a.store).LoadAll()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				switch ro.format {
				case "text":
					if err := renderTextReport(out, ro, res, a); err != nil {
						return err
					}
				case "json":
					if err := renderJSONReport(out, ro, res, a); err != nil {
						return err
					}
				default:
					return fmt.Errorf("unknown format %q: must be text or json", ro.format)
				}

				if ro.strict && len(res.Failures) > 0 {
					return &PartialReportError{
						Skipped: len(res.Failures),
						Total:   len(res.Failures) + len(res.Sessions),
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&ro.student, "student", "", "Show one student's attendance by index number")
	cmd.Flags().BoolVar(&ro.sessions, "sessions", true, "Include the per-session table")
	cmd.Flags().BoolVar(&ro.strict, "strict", false, "Fail when any session file could not be parsed")
	cmd.Flags().StringVar(&ro.format, "format", "text", "Output format: text or json")

	return cmd
}

func summaries(ro *reportOptions, res *report.LoadResult, a *app) ([]report.StudentSummary, error) {
	rows := report.Summarize(res.Sessions, a.roster.Students())
	if ro.student == "" {
		return rows, nil
	}
	for _, r := range rows {
		if r.Student.Index == ro.student {
			return []report.StudentSummary{r}, nil
		}
	}
	return nil, fmt.Errorf("student %q is not registered and has no recorded attendance", ro.student)
}

func renderTextReport(w io.Writer, ro *reportOptions, res *report.LoadResult, a *app) error {
	if ro.student == "" {
		report.RenderOverview(w, res, a.roster.Students(), ro.sessions)
		return nil
	}

	rows, err := summaries(ro, res, a)
	if err != nil {
		return err
	}
	report.RenderStudentDetail(w, rows[0], res)
	report.RenderWarnings(w, res.Failures)
	return nil
}

func renderJSONReport(w io.Writer, ro *reportOptions, res *report.LoadResult, a *app) error {
	rows, err := summaries(ro, res, a)
	if err != nil {
		return err
	}

	doc := jsonReport{Students: rows, Class: report.ClassRate(rows), Sessions: []jsonSession{}}
	if ro.sessions {
		for i, s := range res.Sessions {
			doc.Sessions = append(doc.Sessions, jsonSession{
				ID:         res.IDs[i],
				CourseCode: s.CourseCode,
				Date:       s.Date,
				StartTime:  s.StartTime,
				Duration:   s.Duration,
				Records:    len(s.Records),
			})
		}
	}
	for _, f := range res.Failures {
		doc.Skipped = append(doc.Skipped, jsonSkipped{ID: f.ID, Error: f.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
