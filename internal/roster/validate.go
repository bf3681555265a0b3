package roster

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Roster lines split on the first whitespace, so an index must be one word.
	if err := v.RegisterValidation("singleword", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateName rejects names that would not stay on one roster line.
func ValidateName(name string) error {
	if err := validate.Var(name, "excludesall=\r\n"); err != nil {
		return &nameError{reason: "student name must not contain line breaks"}
	}
	return nil
}

type nameError struct {
	reason string
}

func (e *nameError) Error() string { return e.reason }

func (e *nameError) Is(target error) bool { return target == ErrInvalidName }

// indexError matches ErrInvalidIndex with errors.Is but keeps a specific
// message for the operator.
type indexError struct {
	reason string
}

func (e *indexError) Error() string { return e.reason }

func (e *indexError) Is(target error) bool { return target == ErrInvalidIndex }

// ValidateIndex checks that index is usable as a roster key. The returned
// error satisfies errors.Is(err, ErrInvalidIndex).
func ValidateIndex(index string) error {
	err := validate.Var(index, "required,singleword")
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return &indexError{reason: "index number is required"}
		case "singleword":
			return &indexError{reason: "index number must not contain spaces"}
		}
	}
	return &indexError{reason: err.Error()}
}
