// Package roster holds the in-memory list of registered students, backed by
// a storage.Store that stays the source of truth across runs.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/storage"
)

var (
	// ErrInvalidIndex is returned when the index is empty or contains
	// whitespace; roster lines split on the first whitespace.
	ErrInvalidIndex = errors.New("student index must be a single non-empty word")

	// ErrInvalidName is returned when the name contains a line break.
	ErrInvalidName = errors.New("student name must be a single line")

	// ErrDuplicateIndex is returned when RejectDuplicates is set and the
	// index is already registered.
	ErrDuplicateIndex = errors.New("student index already registered")
)

// Options controls registration policy.
type Options struct {
	RejectDuplicates bool
}

// Roster is the ordered, append-only student list for one process run.
type Roster struct {
	store    storage.Store
	opts     Options
	students []models.Student
}

// Load reads the persisted roster. A store with no roster yields an empty
// Roster.
func Load(store storage.Store, opts Options) (*Roster, error) {
	students, err := store.LoadStudents()
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	return &Roster{store: store, opts: opts, students: students}, nil
}

// Append persists s and then adds it to the in-memory list. When the write
// fails the in-memory list is left unchanged so it never diverges from
// storage.
func (r *Roster) Append(s models.Student) error {
	s.Index = strings.TrimSpace(s.Index)
	if err := ValidateIndex(s.Index); err != nil {
		return err
	}
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if r.opts.RejectDuplicates {
		if _, ok := r.Lookup(s.Index); ok {
			return fmt.Errorf("%s: %w", s.Index, ErrDuplicateIndex)
		}
	}

	if err := r.store.AppendStudent(s); err != nil {
		return fmt.Errorf("saving student %s: %w", s.Index, err)
	}
	r.students = append(r.students, s)
	slog.Debug("Registered student", "index", s.Index, "total", len(r.students))
	return nil
}

// Students returns a copy of the roster in registration order.
func (r *Roster) Students() []models.Student {
	return slices.Clone(r.students)
}

// Len returns the number of registered students.
func (r *Roster) Len() int {
	return len(r.students)
}

// Lookup returns the first student registered with index.
func (r *Roster) Lookup(index string) (models.Student, bool) {
	for _, s := range r.students {
		if s.Index == index {
			return s, true
		}
	}
	return models.Student{}, false
}
