package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// ErrNotFound is returned when a primary record is absent. Index buckets are
// created lazily, so their readers report absence as an empty list (or an
// explicit ok flag) instead.
var ErrNotFound = errors.New("store: not found")

// Every atomic step is committed synced; a committed batch is the durability
// checkpoint the engines rely on.
var writeOptions = &pebble.WriteOptions{Sync: true}

// Store owns the key-value database holding every social record and every
// secondary index. Each bucket lives under its own key prefix and is mutated
// only through the narrow API in this package; engines stage related writes
// on a single batch so no partial state is ever durable.
type Store struct {
	db *pebble.DB
}

func Open(path string) (*Store, error) {
	opts := pebble.Options{}
	db, err := pebble.Open(path, &opts)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenMemory backs the store with an in-memory filesystem. Tests only.
func OpenMemory() (*Store, error) {
	opts := pebble.Options{FS: vfs.NewMem()}
	db, err := pebble.Open("", &opts)
	if err != nil {
		return nil, fmt.Errorf("store: open in-memory: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewBatch starts an atomic step. Callers stage every write belonging to the
// step on the batch and commit exactly once.
func (s *Store) NewBatch() *pebble.Batch {
	return s.db.NewBatch()
}

func (s *Store) Commit(b *pebble.Batch) error {
	return b.Commit(writeOptions)
}

func (s *Store) get(key []byte, out any) error {
	raw, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	defer closer.Close()
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func set(b *pebble.Batch, key []byte, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return b.Set(key, raw, nil)
}
