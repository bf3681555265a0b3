// Package report reads persisted attendance sessions back from storage and
// aggregates per-student statistics.
package report

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/microsoft/rollcall/internal/codec"
	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/statistics"
	"github.com/microsoft/rollcall/internal/storage"
)

// ClassRateLevel is the confidence level of the class attendance interval.
const ClassRateLevel = 0.95

// classRateSeed fixes the resampling so the same data renders the same report.
const classRateSeed = 1

// FileError records a session that could not be read.
type FileError struct {
	ID  string
	Err error
}

func (e FileError) Error() string {
	var pe *codec.ParseError
	if errors.As(e.Err, &pe) && pe.Source == e.ID {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.ID, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// LoadResult holds every readable session and the per-file failures.
// IDs[i] is the storage id Sessions[i] was read from.
type LoadResult struct {
	IDs      []string
	Sessions []*models.AttendanceSession
	Failures []FileError
}

// Engine reads sessions through a store. It does not consult the live roster.
type Engine struct {
	store storage.Store
}

// NewEngine returns an Engine over store.
func NewEngine(store storage.Store) *Engine {
	return &Engine{store: store}
}

// ListSessionFiles returns the ids of all stored sessions, sorted. Filtering
// by the session_<courseCode>_<date>.txt convention is the store's contract.
func (e *Engine) ListSessionFiles() ([]string, error) {
	ids, err := e.store.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return ids, nil
}

// ParseSession reads one session. Malformed content yields a *codec.ParseError.
func (e *Engine) ParseSession(id string) (*models.AttendanceSession, error) {
	return e.store.ReadSession(id)
}

// LoadAll parses every session. A file that fails to parse is recorded in
// Failures and the rest are still loaded; only a listing failure is returned
// as an error.
func (e *Engine) LoadAll() (*LoadResult, error) {
	ids, err := e.ListSessionFiles()
	if err != nil {
		return nil, err
	}

	res := &LoadResult{}
	for _, id := range ids {
		s, err := e.ParseSession(id)
		if err != nil {
			slog.Debug("Skipping unreadable session", "session", id, "error", err)
			res.Failures = append(res.Failures, FileError{ID: id, Err: err})
			continue
		}
		res.IDs = append(res.IDs, id)
		res.Sessions = append(res.Sessions, s)
	}
	return res, nil
}

// Tally counts one student's statuses across sessions.
type Tally struct {
	Present       int `json:"present"`
	Absent        int `json:"absent"`
	Late          int `json:"late"`
	TotalSessions int `json:"total_sessions"`
}

// Rate is the share of counted sessions the student attended, Late
// included. It is 0 when the student appears in no session.
func (t Tally) Rate() float64 {
	if t.TotalSessions == 0 {
		return 0
	}
	return float64(t.Present+t.Late) / float64(t.TotalSessions)
}

func (t *Tally) add(s models.Status) {
	switch s {
	case models.StatusPresent:
		t.Present++
	case models.StatusAbsent:
		t.Absent++
	case models.StatusLate:
		t.Late++
	}
	t.TotalSessions++
}

// Aggregate tallies index across sessions. Sessions without a record for
// index are not counted; within one session only the first record counts.
func Aggregate(sessions []*models.AttendanceSession, index string) Tally {
	var t Tally
	for _, s := range sessions {
		if r, ok := findRecord(s, index); ok {
			t.add(r.Status)
		}
	}
	return t
}

func findRecord(s *models.AttendanceSession, index string) (models.AttendanceRecord, bool) {
	for _, r := range s.Records {
		if r.StudentIndex == index {
			return r, true
		}
	}
	return models.AttendanceRecord{}, false
}

// StudentSummary is one summary row. Registered is false for indices that
// appear in sessions but not on the roster.
type StudentSummary struct {
	Student    models.Student `json:"student"`
	Registered bool           `json:"registered"`
	Tally      Tally          `json:"tally"`
}

// Summarize returns one row per distinct student index: roster order first,
// then indices found only in sessions in the order they are first seen.
func Summarize(sessions []*models.AttendanceSession, students []models.Student) []StudentSummary {
	seen := make(map[string]bool)
	var rows []StudentSummary

	for _, st := range students {
		if seen[st.Index] {
			continue
		}
		seen[st.Index] = true
		rows = append(rows, StudentSummary{Student: st, Registered: true})
	}
	for _, s := range sessions {
		for _, r := range s.Records {
			if seen[r.StudentIndex] {
				continue
			}
			seen[r.StudentIndex] = true
			rows = append(rows, StudentSummary{Student: models.Student{Index: r.StudentIndex}})
		}
	}

	for i := range rows {
		rows[i].Tally = Aggregate(sessions, rows[i].Student.Index)
	}
	return rows
}

// ClassRate is the mean attendance rate over students who appear in at least
// one session, with its bootstrap interval.
func ClassRate(rows []StudentSummary) statistics.RateInterval {
	var rates []float64
	for _, r := range rows {
		if r.Tally.TotalSessions > 0 {
			rates = append(rates, r.Tally.Rate())
		}
	}
	return statistics.ClassRate(rates, ClassRateLevel, classRateSeed)
}
