// Package wizard collects registration details through an interactive form.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/microsoft/rollcall/internal/models"
	"github.com/microsoft/rollcall/internal/roster"
	"golang.org/x/term"
)

// RunRegisterForm asks for a student's index number and name. Values already
// set on initial pre-populate the fields.
func RunRegisterForm(in io.Reader, out io.Writer, initial models.Student) (models.Student, error) {
	index, name := initial.Index, initial.Name

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Student index number").
				Description("A single word, e.g. S1 or 10649731").
				Value(&index).
				Validate(ValidateIndex),
			huh.NewInput().
				Title("Student name").
				Placeholder("Alice Smith").
				Value(&name).
				Validate(roster.ValidateName),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return models.Student{}, fmt.Errorf("registration form failed: %w", err)
	}

	return Normalize(models.Student{Index: index, Name: name}), nil
}

// ValidateIndex accepts a single non-empty word, ignoring surrounding
// whitespace.
func ValidateIndex(s string) error {
	return roster.ValidateIndex(strings.TrimSpace(s))
}

// Normalize trims the index and the name's surrounding whitespace.
func Normalize(s models.Student) models.Student {
	return models.Student{
		Index: strings.TrimSpace(s.Index),
		Name:  strings.TrimSpace(s.Name),
	}
}
