// Package jsonfile keeps the tour collection in memory and mirrors it to a
// single JSON array file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/zhouzirui/natours/backend/internal/model/tour"
)

var ErrPersist = errors.New("persist tours")

// Store implements tour.Store on top of a JSON file that is read once and
// rewritten wholesale on every create.
type Store struct {
	path string

	mu    sync.RWMutex
	items []tour.Tour
}

// Open reads and parses the file at path. A missing or malformed file is an error.
func Open(path string) (*Store, error) {
	items, err := Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("[jsonfile] loaded %d tours from %s", len(items), path)
	return &Store{path: path, items: items}, nil
}

// Load parses a JSON array of tours from path.
func Load(path string) ([]tour.Tour, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tours file: %w", err)
	}
	var items []tour.Tour
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse tours file %s: %w", path, err)
	}
	if items == nil {
		items = []tour.Tour{}
	}
	return items, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) List(_ context.Context) ([]tour.Tour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tour.Tour(nil), s.items...), nil
}

func (s *Store) FindByID(_ context.Context, id int) (tour.Tour, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := tour.Find(s.items, id)
	return t, ok, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// Create appends a tour and rewrites the file. The append is undone when the
// write fails so memory never runs ahead of disk.
func (s *Store) Create(ctx context.Context, fields *tour.Fields) (tour.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return tour.Tour{}, err
	}

	created, err := tour.Merge(fields, func() (int, error) { return tour.NextID(s.items) })
	if err != nil {
		return tour.Tour{}, err
	}
	next := append(s.items[:len(s.items):len(s.items)], created)

	if err := Save(s.path, next); err != nil {
		return tour.Tour{}, err
	}
	s.items = next
	return created, nil
}

// Save overwrites path with the JSON encoding of items via a temp file and rename.
func Save(path string, items []tour.Tour) error {
	if items == nil {
		items = []tour.Tour{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w: write: %w", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: close: %w", ErrPersist, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("%w: chmod: %w", ErrPersist, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: rename: %w", ErrPersist, err)
	}
	return nil
}
