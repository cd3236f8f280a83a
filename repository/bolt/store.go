// Package bolt implements the repositories on an embedded bbolt file, for single-household
// installs that do not run Postgres.
package bolt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketTasks        = []byte("tasks")
	bucketParticipants = []byte("participants")
	bucketCompletions  = []byte("task_completions")
)

// Store wraps a bbolt database holding tasks, participants and the completion log.
type Store struct {
	db  *bbolt.DB
	now func() time.Time
}

// Open initializes the bbolt file and ensures every bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketTasks, bucketParticipants, bucketCompletions} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the bbolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database can still serve read transactions.
func (s *Store) Ping() error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketTasks) == nil {
			return fmt.Errorf("bucket %s missing", bucketTasks)
		}
		return nil
	})
}

func (s *Store) open() error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return nil
}

func getJSON(b *bbolt.Bucket, key string, dest interface{}) (bool, error) {
	raw := b.Get([]byte(key))
	if raw == nil {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func putJSON(b *bbolt.Bucket, key []byte, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.Put(key, payload)
}

func completionKey(completedAt time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%020d_%s", completedAt.UnixNano(), id))
}
