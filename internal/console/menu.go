// Package console implements the interactive numbered menu.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/prompt"
	"github.com/microsoft/rollcall/internal/report"
	"github.com/microsoft/rollcall/internal/roster"
	"github.com/microsoft/rollcall/internal/storage"
	"github.com/microsoft/rollcall/internal/workflow"
)

// Menu choices.
const (
	ChoiceRegister = 1
	ChoiceList     = 2
	ChoiceMark     = 3
	ChoiceReports  = 4
	ChoiceExit     = 5
)

const rule = "=================================================="

// Options tunes the menu.
type Options struct {
	// Now overrides the clock used for session dates.
	Now func() time.Time
	// ShowSessions adds the per-session table to the reports view.
	ShowSessions bool
}

// Menu owns the roster for the lifetime of one interactive run.
type Menu struct {
	roster *roster.Roster
	store  storage.Store
	p      *prompt.Prompter
	opts   Options
}

// New returns a Menu reading operator input from in and writing to out.
func New(r *roster.Roster, store storage.Store, in io.Reader, out io.Writer, opts Options) *Menu {
	return &Menu{roster: r, store: store, p: prompt.New(in, out), opts: opts}
}

// Run shows the menu until the operator chooses Exit or input ends.
// Operation failures are reported and the menu continues.
func (m *Menu) Run() error {
	for {
		m.printMenu()

		token, err := m.p.Token("Enter your choice: ")
		if err != nil {
			return m.exit(err)
		}
		choice, err := strconv.Atoi(token)
		if err != nil {
			m.p.Println("\nInvalid input. Please enter a number.")
			continue
		}

		switch choice {
		case ChoiceRegister:
			err = m.register()
		case ChoiceList:
			roster.Render(m.p.Out(), m.roster.Students())
		case ChoiceMark:
			err = m.mark()
		case ChoiceReports:
			err = m.reports()
		case ChoiceExit:
			m.p.Println("Exiting program. Goodbye!")
			return nil
		default:
			m.p.Println("Invalid choice. Please try again.")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return m.exit(err)
			}
			m.p.Printf("Error: %v\n", err)
		}
	}
}

func (m *Menu) exit(err error) error {
	if errors.Is(err, io.EOF) {
		m.p.Println("\nExiting program. Goodbye!")
		return nil
	}
	return err
}

func (m *Menu) printMenu() {
	m.p.Println("\n" + rule)
	m.p.Println("  Digital Attendance System Menu")
	m.p.Println(rule)
	m.p.Println("1. Register a new student")
	m.p.Println("2. View all registered students")
	m.p.Println("3. Create/Mark a lecture session")
	m.p.Println("4. View Reports and Summaries")
	m.p.Println("5. Exit")
	m.p.Println(strings.Repeat("-", len(rule)))
}

func (m *Menu) register() error {
	index, err := m.p.Token("Enter student index number: ")
	if err != nil {
		return err
	}
	name, err := m.p.Line("Enter student name: ")
	if err != nil {
		return err
	}

	s := models.Student{Index: index, Name: strings.TrimSpace(name)}
	if err := m.roster.Append(s); err != nil {
		return fmt.Errorf("registering student: %w", err)
	}
	m.p.Println("\nStudent registered and saved successfully.")
	return nil
}

func (m *Menu) mark() error {
	wf := workflow.New(m.roster, m.store, m.p, m.opts.Now)
	if _, err := wf.Mark(workflow.Details{}); err != nil && !errors.Is(err, workflow.ErrEmptyRoster) {
		return err
	}
	return nil
}

func (m *Menu) reports() error {
	m.p.Println("\n--- View Reports and Summaries ---")
	res, err := report.NewEngine(m.store).LoadAll()
	if err != nil {
		return err
	}
	report.RenderOverview(m.p.Out(), res, m.roster.Students(), m.opts.ShowSessions)
	return nil
}
