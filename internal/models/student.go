// Package models defines students, attendance statuses, and sessions.
package models

// Student is a registered member of the roster. Index is the primary
// identifier; uniqueness is a roster policy, not a model invariant.
type Student struct {
	Index string `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}
