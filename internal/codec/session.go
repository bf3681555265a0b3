package codec

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/microsoft/rollcall/internal/models"
)

var headerPattern = regexp.MustCompile(`^Course: (.*), Date: (.*), Start Time: (.*), Duration: (.*)$`)

// ParseError reports a malformed session file.
type ParseError struct {
	Source string
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
}

// FormatHeader returns the first line of a session file.
func FormatHeader(s *models.AttendanceSession) string {
	return fmt.Sprintf("Course: %s, Date: %s, Start Time: %s, Duration: %s",
		s.CourseCode, s.Date, s.StartTime, s.Duration)
}

// WriteSession writes the header and one "<index> <status>" line per record.
func WriteSession(w io.Writer, s *models.AttendanceSession) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, FormatHeader(s)); err != nil {
		return err
	}
	for _, r := range s.Records {
		if _, err := fmt.Fprintf(bw, "%s %s\n", r.StudentIndex, r.Status); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSession parses a session file. source names the file in errors.
// Blank lines after the header are ignored.
func ReadSession(r io.Reader, source string) (*models.AttendanceSession, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		return nil, &ParseError{Source: source, Line: 1, Msg: "missing header"}
	}

	m := headerPattern.FindStringSubmatch(strings.TrimRight(scanner.Text(), "\r"))
	if m == nil {
		return nil, &ParseError{Source: source, Line: 1, Msg: "malformed header"}
	}
	session := models.NewAttendanceSession(m[1], m[2], m[3], m[4])

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &ParseError{
				Source: source,
				Line:   lineNo,
				Msg:    fmt.Sprintf("record must have 2 fields, got %d", len(fields)),
			}
		}
		status, err := models.ParseStatus(fields[1])
		if err != nil {
			return nil, &ParseError{Source: source, Line: lineNo, Msg: err.Error()}
		}
		session.AddRecord(fields[0], status)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	return session, nil
}
