package storage

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/microsoft/rollcall/internal/codec"
	"github.com/microsoft/rollcall/internal/models"
)

const (
	rosterPrefix  = "roster/"
	sessionPrefix = "session/"
	rosterSeqKey  = "meta/roster_seq"
)

// BadgerOptions configures a BadgerStore.
type BadgerOptions struct {
	Dir        string `mapstructure:"dir"`
	InMemory   bool   `mapstructure:"in_memory"`
	SyncWrites bool   `mapstructure:"sync_writes"`
}

// DefaultBadgerOptions keeps the database in .rollcall-db.
func DefaultBadgerOptions() BadgerOptions {
	return BadgerOptions{Dir: ".rollcall-db", SyncWrites: true}
}

// BadgerStore keeps roster lines and session files as values in an embedded
// badger database. Roster keys carry a monotonic sequence so iteration
// returns students in registration order.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

var _ Store = (*BadgerStore)(nil)

// OpenBadgerStore opens (or creates) the database described by opts.
func OpenBadgerStore(opts BadgerOptions) (*BadgerStore, error) {
	dir := opts.Dir
	if opts.InMemory {
		dir = ""
	}
	bopts := badger.DefaultOptions(dir).
		WithInMemory(opts.InMemory).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(badgerLogger{})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	seq, err := db.GetSequence([]byte(rosterSeqKey), 16)
	if err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("allocating roster sequence: %w", err)
	}

	return &BadgerStore{db: db, seq: seq}, nil
}

func (bs *BadgerStore) LoadStudents() ([]models.Student, error) {
	var students []models.Student
	err := bs.db.View(func(txn *badger.Txn) error {
		prefix := []byte(rosterPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				if s, ok := codec.ParseStudentLine(string(val)); ok {
					students = append(students, s)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	return students, nil
}

func (bs *BadgerStore) AppendStudent(s models.Student) error {
	n, err := bs.seq.Next()
	if err != nil {
		return fmt.Errorf("allocating roster key: %w", err)
	}

	key := []byte(fmt.Sprintf("%s%020d", rosterPrefix, n))
	err = bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, []byte(codec.FormatStudent(s)))
	})
	if err != nil {
		return fmt.Errorf("appending student: %w", err)
	}
	return nil
}

func (bs *BadgerStore) WriteSession(s *models.AttendanceSession) (string, error) {
	var buf bytes.Buffer
	if err := codec.WriteSession(&buf, s); err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}

	id := s.GenerateFilename()
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(sessionPrefix+id), buf.Bytes())
	})
	if err != nil {
		return "", fmt.Errorf("writing session: %w", err)
	}
	return id, nil
}

func (bs *BadgerStore) ListSessions() ([]string, error) {
	var ids []string
	err := bs.db.View(func(txn *badger.Txn) error {
		prefix := []byte(sessionPrefix)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := strings.TrimPrefix(string(it.Item().Key()), sessionPrefix)
			if models.IsSessionFilename(id) {
				ids = append(ids, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return ids, nil
}

func (bs *BadgerStore) ReadSession(id string) (*models.AttendanceSession, error) {
	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionPrefix + id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	return codec.ReadSession(bytes.NewReader(data), id)
}

// Close releases unused sequence leases and closes the database.
func (bs *BadgerStore) Close() error {
	return errors.Join(bs.seq.Release(), bs.db.Close())
}

// badgerLogger routes badger's internal logging to slog. Info and debug
// output is demoted to debug so normal runs stay quiet.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	slog.Error(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (badgerLogger) Warningf(format string, args ...any) {
	slog.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (badgerLogger) Infof(format string, args ...any) {
	slog.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (badgerLogger) Debugf(format string, args ...any) {
	slog.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}
