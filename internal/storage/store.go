// Package storage persists the roster and attendance sessions behind a small
// interface with a filesystem and an embedded key-value implementation.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/microsoft/rollcall/internal/models"
)

//go:generate go tool mockgen -source store.go -destination ../roster/mock_store_test.go -package roster

// ErrNotFound is returned by ReadSession when no session has the given id.
var ErrNotFound = errors.New("session not found")

// Store is the persistence boundary. Roster writes append; session writes
// replace any session stored under the same id.
type Store interface {
	// LoadStudents returns the roster in insertion order. A store with no
	// roster yet returns an empty slice and no error.
	LoadStudents() ([]models.Student, error)

	// AppendStudent durably appends one student. It never deduplicates.
	AppendStudent(s models.Student) error

	// WriteSession stores s under s.GenerateFilename() and returns that id.
	WriteSession(s *models.AttendanceSession) (string, error)

	// ListSessions returns the ids of every stored session that follows the
	// session_<courseCode>_<date>.txt convention, sorted. Other entries in
	// the backing store are not returned.
	ListSessions() ([]string, error)

	// ReadSession parses the session stored under id.
	ReadSession(id string) (*models.AttendanceSession, error)

	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Open creates the store for backend, decoding options into the backend's
// option struct. A relative dir, including the backend's default, is
// resolved against baseDir; an empty baseDir leaves it relative to the
// working directory.
func Open(backend string, options map[string]any, baseDir string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendFile:
		opts := DefaultFileOptions()
		if err := mapstructure.Decode(options, &opts); err != nil {
			return nil, fmt.Errorf("decoding file storage options: %w", err)
		}
		opts.Dir = resolveDir(baseDir, opts.Dir)
		return NewFileStore(opts), nil
	case BackendBadger:
		opts := DefaultBadgerOptions()
		if err := mapstructure.Decode(options, &opts); err != nil {
			return nil, fmt.Errorf("decoding badger storage options: %w", err)
		}
		if !opts.InMemory {
			opts.Dir = resolveDir(baseDir, opts.Dir)
		}
		return OpenBadgerStore(opts)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func resolveDir(base, dir string) string {
	if base == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
