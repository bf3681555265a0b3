package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/roster"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts and percentages.
var printer = message.NewPrinter(language.English)

const (
	colIndex    = 15
	colName     = 30
	colCount    = 9
	colSessions = 10
	colFile     = 36
	colCourse   = 10
	colDate     = 12
	colStart    = 7
	colDuration = 10
	colStatus   = 5
)

const unregisteredName = "(not registered)"

// RenderStudentSummary writes one row per student with counts and rate.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderStudentSummary(w io.Writer, rows []StudentSummary, sessionCount int) {
	fmt.Fprintf(w, "\n--- Attendance Summary (%s sessions) ---\n", printer.Sprintf("%d", sessionCount))
	header := pad("INDEX NUMBER", colIndex) + pad("STUDENT NAME", colName) +
		pad("PRESENT", colCount) + pad("ABSENT", colCount) + pad("LATE", colCount) +
		pad("SESSIONS", colSessions) + "RATE"
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No attendance recorded yet.")
		return
	}
	for _, r := range rows {
		fmt.Fprintln(w, pad(r.Student.Index, colIndex)+pad(displayName(r), colName)+
			pad(count(r.Tally.Present), colCount)+pad(count(r.Tally.Absent), colCount)+
			pad(count(r.Tally.Late), colCount)+pad(count(r.Tally.TotalSessions), colSessions)+
			rate(r.Tally))
	}

	if ci := ClassRate(rows); ci.Students > 0 {
		fmt.Fprintf(w, "\nClass attendance: %s (%s CI %s to %s, %s students)\n",
			percent(ci.Mean), percent(ci.Level), percent(ci.Lower), percent(ci.Upper), count(ci.Students))
	}
}

// RenderSessionSummary writes one row per session with per-status counts.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderSessionSummary(w io.Writer, res *LoadResult) {
	fmt.Fprintln(w, "\n--- Sessions ---")
	header := pad("SESSION FILE", colFile) + pad("COURSE", colCourse) + pad("DATE", colDate) +
		pad("START", colStart) + pad("DURATION", colDuration) +
		pad("P", colStatus) + pad("A", colStatus) + pad("L", colStatus) + "TOTAL"
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	if len(res.Sessions) == 0 {
		fmt.Fprintln(w, "No session files found.")
		return
	}
	for i, s := range res.Sessions {
		c := s.Counts()
		fmt.Fprintln(w, pad(res.IDs[i], colFile)+pad(s.CourseCode, colCourse)+pad(s.Date, colDate)+
			pad(s.StartTime, colStart)+pad(s.Duration, colDuration)+
			pad(count(c[models.StatusPresent]), colStatus)+pad(count(c[models.StatusAbsent]), colStatus)+
			pad(count(c[models.StatusLate]), colStatus)+count(len(s.Records)))
	}
}

// RenderStudentDetail writes one student's status in every session they
// appear in, followed by their totals.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderStudentDetail(w io.Writer, row StudentSummary, res *LoadResult) {
	fmt.Fprintf(w, "\n--- Attendance for %s (%s) ---\n", displayName(row), row.Student.Index)
	header := pad("COURSE", colCourse) + pad("DATE", colDate) + pad("START", colStart) + "STATUS"
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)+4))

	for _, s := range res.Sessions {
		r, ok := findRecord(s, row.Student.Index)
		if !ok {
			continue
		}
		fmt.Fprintln(w, pad(s.CourseCode, colCourse)+pad(s.Date, colDate)+pad(s.StartTime, colStart)+r.Status.Label())
	}
	if row.Tally.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions recorded for this student.")
		return
	}
	fmt.Fprintf(w, "\nPresent: %s  Absent: %s  Late: %s  Sessions: %s  Rate: %s\n",
		count(row.Tally.Present), count(row.Tally.Absent), count(row.Tally.Late),
		count(row.Tally.TotalSessions), rate(row.Tally))
}

// RenderSessionDetail writes a single session's header fields and records.
// Names come from students when the index is registered.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderSessionDetail(w io.Writer, s *models.AttendanceSession, students []models.Student) {
	names := make(map[string]string, len(students))
	for _, st := range students {
		if _, ok := names[st.Index]; !ok {
			names[st.Index] = st.Name
		}
	}

	fmt.Fprintf(w, "\nCourse: %s  Date: %s  Start Time: %s  Duration: %s\n",
		s.CourseCode, s.Date, s.StartTime, s.Duration)
	header := pad("INDEX NUMBER", colIndex) + pad("STUDENT NAME", colName) + "STATUS"
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)+4))
	for _, r := range s.Records {
		name, ok := names[r.StudentIndex]
		if !ok {
			name = unregisteredName
		}
		fmt.Fprintln(w, pad(r.StudentIndex, colIndex)+pad(name, colName)+r.Status.Label())
	}
}

// RenderWarnings lists sessions that were skipped.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderWarnings(w io.Writer, failures []FileError) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, f := range failures {
		fmt.Fprintf(w, "Warning: skipped %s\n", f.Error())
	}
}

func displayName(r StudentSummary) string {
	if !r.Registered {
		return unregisteredName
	}
	return r.Student.Name
}

func count(n int) string {
	return printer.Sprintf("%d", n)
}

func rate(t Tally) string {
	if t.TotalSessions == 0 {
		return "-"
	}
	return percent(t.Rate())
}

func percent(f float64) string {
	return printer.Sprintf("%.1f%%", f*100)
}

func pad(s string, width int) string {
	return roster.PadRight(s, width) + " "
}

// RenderOverview writes the full report: the student summary, optionally the
// session table, and any skipped-file warnings.
func RenderOverview(w io.Writer, res *LoadResult, students []models.Student, showSessions bool) {
	RenderStudentSummary(w, Summarize(res.Sessions, students), len(res.Sessions))
	if showSessions {
		RenderSessionSummary(w, res)
	}
	RenderWarnings(w, res.Failures)
}
