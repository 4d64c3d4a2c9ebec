// Package docstore provides a document-oriented persistence backend.
// Each entity kind lives in its own collection, held in memory and
// persisted as a JSON file under the data directory. It implements the
// same repository interfaces as the PostgreSQL backend in
// internal/repository and produces identical external shapes, including
// int64 ids allocated from a per-collection counter persisted with the
// data.
package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// collection is one entity kind's documents keyed by id, plus the id
// counter for new documents.
type collection[T any] struct {
	// NextID is the id assigned to the next inserted document.
	NextID int64 `json:"nextId"`
	// Docs maps document id to document.
	Docs map[int64]T `json:"docs"`
}

// allocate returns the next free id and advances the counter.
func (c *collection[T]) allocate() int64 {
	if c.NextID == 0 {
		c.NextID = 1
	}
	id := c.NextID
	c.NextID++
	return id
}

// Store holds every collection and serializes all access behind one
// RWMutex. A single write lock means the check-then-act upsert paths
// cannot interleave inside this backend.
type Store struct {
	mu  sync.RWMutex
	dir string

	users      collection[userDoc]
	events     collection[models.Event]
	attendance collection[models.Attendance]
	books      collection[models.Book]
	records    collection[models.ReadingRecord]
}

// Open loads (or initializes) a document store rooted at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{dir: dir}
	if err := load(dir, "users", &s.users); err != nil {
		return nil, err
	}
	if err := load(dir, "events", &s.events); err != nil {
		return nil, err
	}
	if err := load(dir, "attendance", &s.attendance); err != nil {
		return nil, err
	}
	if err := load(dir, "books", &s.books); err != nil {
		return nil, err
	}
	if err := load(dir, "reading_records", &s.records); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads one collection file into c. A missing file initializes an
// empty collection.
func load[T any](dir, name string, c *collection[T]) error {
	data, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if os.IsNotExist(err) {
		c.NextID = 1
		c.Docs = make(map[int64]T)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", name, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("decode collection %s: %w", name, err)
	}
	if c.Docs == nil {
		c.Docs = make(map[int64]T)
	}
	if c.NextID == 0 {
		c.NextID = 1
	}
	return nil
}

// save writes one collection to its file atomically: marshal, write a
// temporary file, then rename over the old one so a crash leaves either
// the previous or the new file, never a torn write.
func save[T any](dir, name string, c *collection[T]) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}

	path := filepath.Join(dir, name+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename collection %s: %w", name, err)
	}
	return nil
}
