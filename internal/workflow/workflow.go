// Package workflow runs one attendance-taking session: it collects the
// session details, asks for every roster student's status, and saves the
// result.
package workflow

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/prompt"
	"github.com/microsoft/rollcall/internal/roster"
	"github.com/microsoft/rollcall/internal/storage"
)

// DateLayout formats session dates as YYYY_MM_DD.
const DateLayout = "2006_01_02"

// ErrEmptyRoster is returned when there is nobody to mark.
var ErrEmptyRoster = errors.New("no students registered yet")

// Details are the operator-supplied session fields. Empty fields are
// prompted for.
type Details struct {
	CourseCode string
	StartTime  string
	Duration   string
}

// Result is the outcome of a completed workflow. SaveErr is set when the
// session was built but could not be persisted.
type Result struct {
	Session *models.AttendanceSession
	ID      string
	SaveErr error
}

// Workflow marks attendance for every student on a roster.
type Workflow struct {
	roster   *roster.Roster
	store    storage.Store
	prompter *prompt.Prompter
	now      func() time.Time
}

// New returns a Workflow. now may be nil to use the system clock.
func New(r *roster.Roster, store storage.Store, p *prompt.Prompter, now func() time.Time) *Workflow {
	if now == nil {
		now = time.Now
	}
	return &Workflow{roster: r, store: store, prompter: p, now: now}
}

// Mark runs the workflow. It returns ErrEmptyRoster without prompting when
// the roster is empty, and the input error (usually io.EOF) if input ends
// before every status is collected; nothing is saved in either case. A save
// failure is reported to the operator and returned in Result.SaveErr.
func (w *Workflow) Mark(d Details) (*Result, error) {
	students := w.roster.Students()
	if len(students) == 0 {
		w.prompter.Println("No students registered yet.")
		return nil, ErrEmptyRoster
	}

	var err error
	if d.CourseCode, err = w.ask(d.CourseCode, "Enter Course Code (e.g., EEE227): "); err != nil {
		return nil, err
	}
	if d.StartTime, err = w.ask(d.StartTime, "Enter Start Time (HH:MM): "); err != nil {
		return nil, err
	}
	if d.Duration, err = w.ask(d.Duration, "Enter Duration (hours): "); err != nil {
		return nil, err
	}

	date := w.now().Format(DateLayout)
	session := models.NewAttendanceSession(d.CourseCode, date, d.StartTime, d.Duration)
	w.prompter.Printf("\n--- Marking attendance for %s on %s ---\n", d.CourseCode, date)

	for _, s := range students {
		status, err := w.askStatus(s)
		if err != nil {
			return nil, err
		}
		session.AddRecord(s.Index, status)
	}

	res := &Result{Session: session}
	res.ID, res.SaveErr = w.store.WriteSession(session)
	if res.SaveErr != nil {
		slog.Debug("Session save failed", "session", session.GenerateFilename(), "error", res.SaveErr)
		w.prompter.Printf("Error creating session file: %v\n", res.SaveErr)
		return res, nil
	}
	w.prompter.Printf("Session data saved to %s\n", res.ID)
	return res, nil
}

func (w *Workflow) ask(prefilled, question string) (string, error) {
	if prefilled != "" {
		return prefilled, nil
	}
	return w.prompter.Token(question)
}

type statusState int

const (
	awaitingInput statusState = iota
	validating
	accepted
)

// askStatus repeats the question until the answer is a single P, A or L.
func (w *Workflow) askStatus(s models.Student) (models.Status, error) {
	question := fmt.Sprintf("Status for %s (%s) [P/A/L]: ", s.Name, s.Index)

	var (
		state  = awaitingInput
		answer string
		status models.Status
	)
	for {
		switch state {
		case awaitingInput:
			line, err := w.prompter.Line(question)
			if err != nil {
				return "", err
			}
			answer = strings.TrimSpace(line)
			state = validating
		case validating:
			st, err := models.ParseStatus(answer)
			if err != nil {
				state = awaitingInput
				continue
			}
			status = st
			state = accepted
		case accepted:
			return status, nil
		}
	}
}
