package models

import (
	"fmt"
	"regexp"
)

// AttendanceRecord is one student's status in one session.
type AttendanceRecord struct {
	StudentIndex string `json:"student_index"`
	Status       Status `json:"status"`
}

// AttendanceSession is one attendance-taking event for a course on a date.
// (CourseCode, Date) identifies the session in storage.
type AttendanceSession struct {
	CourseCode string             `json:"course_code"`
	Date       string             `json:"date"`
	StartTime  string             `json:"start_time"`
	Duration   string             `json:"duration"`
	Records    []AttendanceRecord `json:"records"`
}

// NewAttendanceSession returns a session with no records.
func NewAttendanceSession(courseCode, date, startTime, duration string) *AttendanceSession {
	return &AttendanceSession{
		CourseCode: courseCode,
		Date:       date,
		StartTime:  startTime,
		Duration:   duration,
	}
}

// AddRecord appends a record. The index is not checked against the roster
// and repeated indices are kept.
func (s *AttendanceSession) AddRecord(studentIndex string, status Status) {
	s.Records = append(s.Records, AttendanceRecord{
		StudentIndex: studentIndex,
		Status:       status,
	})
}

// GenerateFilename returns the storage name for the session.
func (s *AttendanceSession) GenerateFilename() string {
	return SessionFilename(s.CourseCode, s.Date)
}

// SessionFilename builds session_<courseCode>_<date>.txt.
func SessionFilename(courseCode, date string) string {
	return fmt.Sprintf("session_%s_%s.txt", courseCode, date)
}

// Counts returns the number of records per status.
func (s *AttendanceSession) Counts() map[Status]int {
	counts := make(map[Status]int, len(AllStatuses))
	for _, r := range s.Records {
		counts[r.Status]++
	}
	return counts
}

var sessionFilenamePattern = regexp.MustCompile(`^session_(.+)_(\d{4}_\d{2}_\d{2})\.txt$`)

// IsSessionFilename reports whether name follows the
// session_<courseCode>_<date>.txt convention.
func IsSessionFilename(name string) bool {
	return sessionFilenamePattern.MatchString(name)
}
