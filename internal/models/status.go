package models

import (
	"fmt"
	"strings"
)

// Status is a student's attendance status within one session.
type Status string

const (
	StatusPresent Status = "P"
	StatusAbsent  Status = "A"
	StatusLate    Status = "L"
)

// AllStatuses lists the statuses in display order.
var AllStatuses = []Status{StatusPresent, StatusAbsent, StatusLate}

// ParseStatus accepts a single status character, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(s) {
	case "P":
		return StatusPresent, nil
	case "A":
		return StatusAbsent, nil
	case "L":
		return StatusLate, nil
	}
	return "", fmt.Errorf("invalid status %q: must be one of P, A, L", s)
}

// Label returns the long form of the status, e.g. "Present".
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusAbsent:
		return "Absent"
	case StatusLate:
		return "Late"
	}
	return string(s)
}
