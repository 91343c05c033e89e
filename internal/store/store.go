// Package store caches extraction results in a bbolt database, keyed by the
// expression text.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"needle/internal/logutil"
)

var logger = logutil.GetLogger("[store] ")

const bucketResult = "result"

// ErrNotFound is returned by Get when there is no entry for an expression.
var ErrNotFound = errors.New("store: no entry for expression")

// Entry is the cached result for one expression.
type Entry struct {
	Expr       string     `json:"expr"`
	Substrings []string   `json:"substrings"`
	Alternated [][]string `json:"alternated"`
	// Row limit Alternated was computed with.
	MaxAlternatives int `json:"max_alternatives"`
}

// Store is a result cache. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Open opens the database at path, creating it if needed.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketResult))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize store %s: %w", path, err)
	}
	logger.Println("opened", path)
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores e, replacing any entry for the same expression.
func (s *Store) Put(e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketResult)).Put([]byte(e.Expr), data)
	})
}

// Get returns the entry for expr.
func (s *Store) Get(expr string) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketResult)).Get([]byte(expr))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &e)
	})
	return e, err
}

// Delete removes the entry for expr. Deleting a missing entry is not an error.
func (s *Store) Delete(expr string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketResult)).Delete([]byte(expr))
	})
}

// Entries returns all entries, ordered by expression.
func (s *Store) Entries() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketResult)).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("entry %q: %w", k, err)
			}
			entries = append(entries, e)
			return nil
		})
	})
	return entries, err
}
