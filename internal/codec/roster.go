// Package codec reads and writes the line-oriented text formats used for the
// roster and for session files.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/microsoft/rollcall/internal/models"
)

// FormatStudent returns the roster line for s, without a trailing newline.
func FormatStudent(s models.Student) string {
	return s.Index + " " + s.Name
}

// ParseStudentLine splits a roster line into index and name. The index is
// the token up to the first whitespace; the name is the remainder with
// leading whitespace trimmed. ok is false for blank lines.
func ParseStudentLine(line string) (s models.Student, ok bool) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return models.Student{}, false
	}

	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return models.Student{Index: line}, true
	}
	return models.Student{
		Index: line[:i],
		Name:  strings.TrimLeftFunc(line[i:], unicode.IsSpace),
	}, true
}

// ReadRoster reads every student from r in file order.
func ReadRoster(r io.Reader) ([]models.Student, error) {
	var students []models.Student
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s, ok := ParseStudentLine(scanner.Text())
		if !ok {
			continue
		}
		students = append(students, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return students, nil
}
