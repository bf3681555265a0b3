package workflow

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/prompt"
	"github.com/microsoft/rollcall/internal/roster"
	"github.com/microsoft/rollcall/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.May, 10, 9, 0, 0, 0, time.Local)
}

func newRoster(t *testing.T, store storage.Store, students ...models.Student) *roster.Roster {
	t.Helper()
	r, err := roster.Load(store, roster.Options{})
	require.NoError(t, err)
	for _, s := range students {
		require.NoError(t, r.Append(s))
	}
	return r
}

func TestMark_Scenario(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(storage.FileOptions{Dir: dir})
	r := newRoster(t, store,
		models.Student{Index: "S1", Name: "Alice"},
		models.Student{Index: "S2", Name: "Bob"})

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("EEE227\n09:00\n2\nP\nL\n"), &out)

	res, err := New(r, store, p, fixedClock).Mark(Details{})
	require.NoError(t, err)
	require.NoError(t, res.SaveErr)
	assert.Equal(t, "session_EEE227_2024_05_10.txt", res.ID)

	data, err := os.ReadFile(filepath.Join(dir, "session_EEE227_2024_05_10.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Course: EEE227, Date: 2024_05_10, Start Time: 09:00, Duration: 2", lines[0])
	assert.Equal(t, []string{"S1 P", "S2 L"}, lines[1:])

	assert.Contains(t, out.String(), "--- Marking attendance for EEE227 on 2024_05_10 ---")
	assert.Contains(t, out.String(), "Status for Alice (S1) [P/A/L]: ")
	assert.Contains(t, out.String(), "Session data saved to session_EEE227_2024_05_10.txt")
}

func TestMark_NormalizesAndReprompts(t *testing.T) {
	store := storage.NewFileStore(storage.FileOptions{Dir: t.TempDir()})
	r := newRoster(t, store, models.Student{Index: "S1", Name: "Alice"})

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("X\n\nPA\npresent\np\n"), &out)

	res, err := New(r, store, p, fixedClock).Mark(Details{CourseCode: "CS101", StartTime: "10:00", Duration: "1"})
	require.NoError(t, err)
	require.Len(t, res.Session.Records, 1)
	assert.Equal(t, models.StatusPresent, res.Session.Records[0].Status)

	// Four rejected answers, then the accepted one.
	assert.Equal(t, 5, strings.Count(out.String(), "Status for Alice (S1) [P/A/L]: "))
	assert.NotContains(t, out.String(), "Enter Course Code")
}

func TestMark_EmptyRosterWritesNothing(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(storage.FileOptions{Dir: dir})
	r := newRoster(t, store)

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("EEE227\n09:00\n2\n"), &out)

	res, err := New(r, store, p, fixedClock).Mark(Details{})
	require.ErrorIs(t, err, ErrEmptyRoster)
	assert.Nil(t, res)
	assert.Equal(t, "No students registered yet.\n", out.String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMark_EOFAbortsWithoutSaving(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(storage.FileOptions{Dir: dir})
	r := newRoster(t, store,
		models.Student{Index: "S1", Name: "Alice"},
		models.Student{Index: "S2", Name: "Bob"})

	p := prompt.New(strings.NewReader("EEE227\n09:00\n2\nP\n"), io.Discard)

	_, err := New(r, store, p, fixedClock).Mark(Details{})
	require.True(t, errors.Is(err, io.EOF))

	ids, err := store.ListSessions()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMark_SaveFailureIsReported(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	students := []models.Student{{Index: "S1", Name: "Alice"}}
	rosterStore := storage.NewFileStore(storage.FileOptions{Dir: base})
	r := newRoster(t, rosterStore, students...)

	// Session writes go under a path whose parent is a regular file.
	broken := storage.NewFileStore(storage.FileOptions{Dir: filepath.Join(blocker, "sessions")})

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("A\n"), &out)

	res, err := New(r, broken, p, fixedClock).Mark(Details{CourseCode: "EEE227", StartTime: "09:00", Duration: "2"})
	require.NoError(t, err)
	require.Error(t, res.SaveErr)
	assert.Equal(t, "", res.ID)
	require.Len(t, res.Session.Records, 1)
	assert.Contains(t, out.String(), "Error creating session file")
}

func TestMark_OverwritesSameCourseAndDay(t *testing.T) {
	store := storage.NewFileStore(storage.FileOptions{Dir: t.TempDir()})
	r := newRoster(t, store, models.Student{Index: "S1", Name: "Alice"})
	d := Details{CourseCode: "EEE227", StartTime: "09:00", Duration: "2"}

	_, err := New(r, store, prompt.New(strings.NewReader("P\n"), io.Discard), fixedClock).Mark(d)
	require.NoError(t, err)
	_, err = New(r, store, prompt.New(strings.NewReader("A\n"), io.Discard), fixedClock).Mark(d)
	require.NoError(t, err)

	got, err := store.ReadSession("session_EEE227_2024_05_10.txt")
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, models.StatusAbsent, got.Records[0].Status)
}
