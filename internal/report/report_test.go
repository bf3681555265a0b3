package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/microsoft/rollcall/internal/codec"
	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, store storage.Store, course, date string, records ...models.AttendanceRecord) {
	t.Helper()
	s := models.NewAttendanceSession(course, date, "09:00", "2")
	s.Records = records
	_, err := store.WriteSession(s)
	require.NoError(t, err)
}

func rec(index string, s models.Status) models.AttendanceRecord {
	return models.AttendanceRecord{StudentIndex: index, Status: s}
}

func TestAggregate_PresentAndAbsent(t *testing.T) {
	store := storage.NewFileStore(storage.FileOptions{Dir: t.TempDir()})
	writeSession(t, store, "EEE227", "2024_05_10", rec("S1", models.StatusPresent))
	writeSession(t, store, "EEE227", "2024_05_11", rec("S1", models.StatusAbsent))

	res, err := NewEngine(store).LoadAll()
	require.NoError(t, err)
	require.Empty(t, res.Failures)

	got := Aggregate(res.Sessions, "S1")
	assert.Equal(t, Tally{Present: 1, Absent: 1, Late: 0, TotalSessions: 2}, got)
	assert.InDelta(t, 0.5, got.Rate(), 1e-9)
}

func TestAggregate_SkipsSessionsWithoutStudent(t *testing.T) {
	one := models.NewAttendanceSession("A", "2024_01_01", "", "")
	one.AddRecord("S1", models.StatusLate)
	two := models.NewAttendanceSession("A", "2024_01_02", "", "")
	two.AddRecord("S2", models.StatusPresent)
	three := models.NewAttendanceSession("A", "2024_01_03", "", "")
	three.AddRecord("S1", models.StatusPresent)
	three.AddRecord("S1", models.StatusAbsent)

	got := Aggregate([]*models.AttendanceSession{one, two, three}, "S1")
	assert.Equal(t, Tally{Present: 1, Late: 1, TotalSessions: 2}, got)

	assert.Equal(t, Tally{}, Aggregate([]*models.AttendanceSession{one, two}, "S9"))
	assert.Equal(t, 0.0, Tally{}.Rate())
}

func TestLoadAll_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(storage.FileOptions{Dir: dir})
	writeSession(t, store, "EEE227", "2024_05_10", rec("S1", models.StatusPresent))
	writeSession(t, store, "EEE227", "2024_05_12", rec("S1", models.StatusLate))

	bad := "Course: EEE227, Date: 2024_05_11, Start Time: 09:00, Duration: 2\nS1 Q\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_EEE227_2024_05_11.txt"), []byte(bad), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "students.txt"), []byte("S1 Alice\n"), 0644))

	res, err := NewEngine(store).LoadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"session_EEE227_2024_05_10.txt", "session_EEE227_2024_05_12.txt"}, res.IDs)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "session_EEE227_2024_05_11.txt", res.Failures[0].ID)

	var pe *codec.ParseError
	require.True(t, errors.As(res.Failures[0], &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "session_EEE227_2024_05_11.txt:2: "+pe.Msg, res.Failures[0].Error())

	assert.Equal(t, Tally{Present: 1, Late: 1, TotalSessions: 2}, Aggregate(res.Sessions, "S1"))
}

func TestListSessionFiles_EmptyStore(t *testing.T) {
	ids, err := NewEngine(storage.NewFileStore(storage.FileOptions{Dir: t.TempDir()})).ListSessionFiles()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileError_NonParseError(t *testing.T) {
	fe := FileError{ID: "session_A_2024_01_01.txt", Err: errors.New("permission denied")}
	assert.Equal(t, "session_A_2024_01_01.txt: permission denied", fe.Error())
}

func TestSummarize_Order(t *testing.T) {
	s1 := models.NewAttendanceSession("A", "2024_01_01", "", "")
	s1.AddRecord("X9", models.StatusPresent)
	s1.AddRecord("S2", models.StatusAbsent)
	s2 := models.NewAttendanceSession("A", "2024_01_02", "", "")
	s2.AddRecord("X8", models.StatusLate)
	s2.AddRecord("S2", models.StatusPresent)

	students := []models.Student{
		{Index: "S1", Name: "Alice"},
		{Index: "S2", Name: "Bob"},
		{Index: "S1", Name: "Alice Duplicate"},
	}

	rows := Summarize([]*models.AttendanceSession{s1, s2}, students)
	require.Len(t, rows, 4)

	assert.Equal(t, "S1", rows[0].Student.Index)
	assert.Equal(t, "Alice", rows[0].Student.Name)
	assert.True(t, rows[0].Registered)
	assert.Equal(t, Tally{}, rows[0].Tally)

	assert.Equal(t, "S2", rows[1].Student.Index)
	assert.Equal(t, Tally{Present: 1, Absent: 1, TotalSessions: 2}, rows[1].Tally)

	assert.Equal(t, "X9", rows[2].Student.Index)
	assert.False(t, rows[2].Registered)
	assert.Equal(t, "X8", rows[3].Student.Index)
}

func TestRenderStudentSummary(t *testing.T) {
	rows := []StudentSummary{
		{Student: models.Student{Index: "S1", Name: "Alice"}, Registered: true, Tally: Tally{Present: 1, Absent: 1, TotalSessions: 2}},
		{Student: models.Student{Index: "S2", Name: "Bob"}, Registered: true},
		{Student: models.Student{Index: "X9"}, Tally: Tally{Late: 1, TotalSessions: 1}},
	}

	var buf bytes.Buffer
	RenderStudentSummary(&buf, rows, 2)
	out := buf.String()

	assert.Contains(t, out, "--- Attendance Summary (2 sessions) ---")
	assert.Contains(t, out, "INDEX NUMBER")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "(not registered)")
	assert.Regexp(t, `S2\s+Bob\s+0\s+0\s+0\s+0\s+-`, out)
	assert.Contains(t, out, "Class attendance: 75.0% (95.0% CI")
	assert.Contains(t, out, "2 students)")
}

func TestClassRate(t *testing.T) {
	rows := []StudentSummary{
		{Tally: Tally{Present: 1, Absent: 1, TotalSessions: 2}},
		{Tally: Tally{}},
		{Tally: Tally{Late: 2, TotalSessions: 2}},
	}

	ci := ClassRate(rows)
	assert.Equal(t, 2, ci.Students)
	assert.InDelta(t, 0.75, ci.Mean, 1e-9)
	assert.Equal(t, ClassRateLevel, ci.Level)
	assert.GreaterOrEqual(t, ci.Lower, 0.5)
	assert.LessOrEqual(t, ci.Upper, 1.0)
	assert.Equal(t, ci, ClassRate(rows))

	assert.Equal(t, 0, ClassRate(rows[1:2]).Students)
}

func TestRenderStudentSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderStudentSummary(&buf, nil, 0)
	assert.Contains(t, buf.String(), "No attendance recorded yet.")
	assert.NotContains(t, buf.String(), "Class attendance")
}

func TestRenderSessionSummary(t *testing.T) {
	s := models.NewAttendanceSession("EEE227", "2024_05_10", "09:00", "2")
	s.AddRecord("S1", models.StatusPresent)
	s.AddRecord("S2", models.StatusLate)
	res := &LoadResult{IDs: []string{s.GenerateFilename()}, Sessions: []*models.AttendanceSession{s}}

	var buf bytes.Buffer
	RenderSessionSummary(&buf, res)
	assert.Regexp(t, `session_EEE227_2024_05_10\.txt\s+EEE227\s+2024_05_10\s+09:00\s+2\s+1\s+0\s+1\s+2`, buf.String())

	buf.Reset()
	RenderSessionSummary(&buf, &LoadResult{})
	assert.Contains(t, buf.String(), "No session files found.")
}

func TestRenderStudentDetail(t *testing.T) {
	s1 := models.NewAttendanceSession("EEE227", "2024_05_10", "09:00", "2")
	s1.AddRecord("S1", models.StatusPresent)
	s2 := models.NewAttendanceSession("EEE227", "2024_05_11", "09:00", "2")
	s2.AddRecord("S2", models.StatusPresent)
	res := &LoadResult{IDs: []string{"a", "b"}, Sessions: []*models.AttendanceSession{s1, s2}}

	row := Summarize(res.Sessions, []models.Student{{Index: "S1", Name: "Alice"}})[0]

	var buf bytes.Buffer
	RenderStudentDetail(&buf, row, res)
	out := buf.String()
	assert.Contains(t, out, "--- Attendance for Alice (S1) ---")
	assert.Regexp(t, `EEE227\s+2024_05_10\s+09:00\s+Present`, out)
	assert.NotContains(t, out, "2024_05_11")
	assert.Contains(t, out, "Rate: 100.0%")
}

func TestRenderSessionDetail(t *testing.T) {
	s := models.NewAttendanceSession("EEE227", "2024_05_10", "09:00", "2")
	s.AddRecord("S1", models.StatusAbsent)
	s.AddRecord("X9", models.StatusLate)

	var buf bytes.Buffer
	RenderSessionDetail(&buf, s, []models.Student{{Index: "S1", Name: "Alice"}})
	out := buf.String()
	assert.Contains(t, out, "Course: EEE227  Date: 2024_05_10")
	assert.Regexp(t, `S1\s+Alice\s+Absent`, out)
	assert.Regexp(t, `X9\s+\(not registered\)\s+Late`, out)
}

func TestRenderWarnings(t *testing.T) {
	var buf bytes.Buffer
	RenderWarnings(&buf, nil)
	assert.Empty(t, buf.String())

	RenderWarnings(&buf, []FileError{{ID: "session_A_2024_01_01.txt", Err: errors.New("boom")}})
	assert.Contains(t, buf.String(), "Warning: skipped session_A_2024_01_01.txt: boom")
}

func TestRenderOverview(t *testing.T) {
	s := models.NewAttendanceSession("EEE227", "2024_05_10", "09:00", "2")
	s.AddRecord("S1", models.StatusPresent)
	res := &LoadResult{
		IDs:      []string{s.GenerateFilename()},
		Sessions: []*models.AttendanceSession{s},
		Failures: []FileError{{ID: "session_B_2024_01_01.txt", Err: errors.New("boom")}},
	}

	var buf bytes.Buffer
	RenderOverview(&buf, res, []models.Student{{Index: "S1", Name: "Alice"}}, true)
	out := buf.String()
	assert.Contains(t, out, "Attendance Summary (1 sessions)")
	assert.Contains(t, out, "--- Sessions ---")
	assert.Contains(t, out, "Warning: skipped session_B_2024_01_01.txt: boom")

	buf.Reset()
	RenderOverview(&buf, res, nil, false)
	assert.NotContains(t, buf.String(), "--- Sessions ---")
	assert.Contains(t, buf.String(), "(not registered)")
}
