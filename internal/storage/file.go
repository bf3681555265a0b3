package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/microsoft/rollcall/internal/codec"
	"github.com/microsoft/rollcall/internal/models"
)

// DefaultRosterFile is the roster file name inside the data directory.
const DefaultRosterFile = "students.txt"

// FileOptions configures a FileStore.
type FileOptions struct {
	Dir        string `mapstructure:"dir"`
	RosterFile string `mapstructure:"roster_file"`
}

// DefaultFileOptions stores everything in the working directory.
func DefaultFileOptions() FileOptions {
	return FileOptions{Dir: ".", RosterFile: DefaultRosterFile}
}

// FileStore keeps the roster and each session as plain text files in one
// directory. Every operation opens and closes its own file handle.
type FileStore struct {
	dir        string
	rosterPath string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store rooted at opts.Dir. Empty fields take defaults.
func NewFileStore(opts FileOptions) *FileStore {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.RosterFile == "" {
		opts.RosterFile = DefaultRosterFile
	}
	rosterPath := opts.RosterFile
	if !filepath.IsAbs(rosterPath) {
		rosterPath = filepath.Join(opts.Dir, rosterPath)
	}
	return &FileStore{dir: opts.Dir, rosterPath: rosterPath}
}

// Dir returns the directory session files are written to.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// RosterPath returns the path of the roster file.
func (fs *FileStore) RosterPath() string {
	return fs.rosterPath
}

func (fs *FileStore) LoadStudents() ([]models.Student, error) {
	f, err := os.Open(fs.rosterPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No roster file yet", "path", fs.rosterPath)
			return nil, nil
		}
		return nil, fmt.Errorf("opening roster file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	students, err := codec.ReadRoster(f)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded roster", "path", fs.rosterPath, "students", len(students))
	return students, nil
}

func (fs *FileStore) AppendStudent(s models.Student) error {
	if err := os.MkdirAll(filepath.Dir(fs.rosterPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	f, err := os.OpenFile(fs.rosterPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening roster file for writing: %w", err)
	}

	if _, err := fmt.Fprintln(f, codec.FormatStudent(s)); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("writing roster file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing roster file: %w", err)
	}
	return nil
}

func (fs *FileStore) WriteSession(s *models.AttendanceSession) (string, error) {
	id := s.GenerateFilename()
	path, err := fs.sessionPath(id)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating session file: %w", err)
	}

	if err := codec.WriteSession(f, s); err != nil {
		f.Close() //nolint:errcheck
		return "", fmt.Errorf("writing session file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing session file: %w", err)
	}

	slog.Debug("Wrote session", "path", path, "records", len(s.Records))
	return id, nil
}

func (fs *FileStore) ListSessions() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !models.IsSessionFilename(e.Name()) {
			continue
		}
		ids = append(ids, e.Name())
	}
	return ids, nil
}

func (fs *FileStore) ReadSession(id string) (*models.AttendanceSession, error) {
	path, err := fs.sessionPath(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("opening session file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	return codec.ReadSession(f, id)
}

// sessionPath maps id to a file directly inside the data directory. Ids with
// path separators are rejected so a course code cannot escape it.
func (fs *FileStore) sessionPath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || filepath.Base(id) != id {
		return "", fmt.Errorf("invalid session id %q", id)
	}
	return filepath.Join(fs.dir, id), nil
}

// Close is a no-op; FileStore holds no open handles between calls.
func (fs *FileStore) Close() error { return nil }
