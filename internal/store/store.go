// Package store is the JSON-file record store. Each collection is one JSON
// document under a data directory, holding an {"items": [...]} envelope.
// Every write replaces the whole document.
//
// Reads fail fast on corrupt content (ErrCorrupt) instead of resetting the
// collection; Repair is the explicit recovery path. Writes within one process
// are serialised per collection and land via temp file + rename, so a crash
// never leaves a half-written document behind.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrCorrupt is returned when a collection file exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt collection")

// Collection names a JSON document in the data directory.
type Collection string

const (
	Users         Collection = "users"
	Trips         Collection = "trips"
	Likes         Collection = "likes"
	Follows       Collection = "follows"
	Comments      Collection = "comments"
	Notifications Collection = "notifications"
	Contacts      Collection = "contacts"
)

// Collections lists every collection the application persists.
var Collections = []Collection{Users, Trips, Likes, Follows, Comments, Notifications, Contacts}

// ParseCollection maps a name such as "likes" to its Collection.
func ParseCollection(name string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q", name)
}

// Envelope is the on-disk shape of every collection.
type Envelope[T any] struct {
	Items []T `json:"items"`
}

// Empty returns an envelope whose Items encode as [] rather than null.
func Empty[T any]() Envelope[T] {
	return Envelope[T]{Items: []T{}}
}

// Store is a handle on a data directory. Construct it once with Open and pass
// it to whatever needs it; it is safe for concurrent use.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[Collection]*sync.Mutex
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	return &Store{dir: dir, locks: make(map[Collection]*sync.Mutex)}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing collection c.
func (s *Store) Path(c Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

func (s *Store) lock(c Collection) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[c]
	if !ok {
		l = &sync.Mutex{}
		s.locks[c] = l
	}
	return l
}

// Read decodes collection c. If the file does not exist yet it is created
// holding fallback, and fallback is returned.
func Read[T any](s *Store, c Collection, fallback T) (T, error) {
	l := s.lock(c)
	l.Lock()
	defer l.Unlock()

	v, err := read(s, c, fallback)
	if err != nil {
		return v, fmt.Errorf("store.Read: %w", err)
	}
	return v, nil
}

// Write replaces collection c with value.
func Write[T any](s *Store, c Collection, value T) error {
	l := s.lock(c)
	l.Lock()
	defer l.Unlock()

	if err := writeFile(s.Path(c), value); err != nil {
		return fmt.Errorf("store.Write: %s: %w", c, err)
	}
	return nil
}

// Update runs a read-modify-write of collection c while holding the
// collection lock. fn reports whether it changed the value; nothing is
// written when it did not, or when it returns an error.
func Update[T any](s *Store, c Collection, fallback T, fn func(*T) (bool, error)) error {
	l := s.lock(c)
	l.Lock()
	defer l.Unlock()

	v, err := read(s, c, fallback)
	if err != nil {
		return fmt.Errorf("store.Update: %w", err)
	}
	changed, err := fn(&v)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := writeFile(s.Path(c), v); err != nil {
		return fmt.Errorf("store.Update: %s: %w", c, err)
	}
	return nil
}

// Repair recovers a corrupt collection. The unreadable file is moved aside
// and an empty envelope takes its place. It returns the backup path, or ""
// when the collection was missing or already readable and nothing was done.
func (s *Store) Repair(c Collection) (string, error) {
	l := s.lock(c)
	l.Lock()
	defer l.Unlock()

	p := s.Path(c)
	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store.Repair: %s: %w", c, err)
	}

	if checkEnvelope(raw) == nil {
		return "", nil
	}

	backup := fmt.Sprintf("%s.corrupt-%d", p, time.Now().Unix())
	if err := os.Rename(p, backup); err != nil {
		return "", fmt.Errorf("store.Repair: %s: move aside: %w", c, err)
	}
	if err := writeFile(p, Empty[json.RawMessage]()); err != nil {
		return "", fmt.Errorf("store.Repair: %s: %w", c, err)
	}
	return backup, nil
}

// read must be called with the collection lock held.
func read[T any](s *Store, c Collection, fallback T) (T, error) {
	p := s.Path(c)
	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeFile(p, fallback); err != nil {
			return fallback, fmt.Errorf("%s: initialise: %w", c, err)
		}
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", c, err)
	}

	if err := checkEnvelope(raw); err != nil {
		return fallback, fmt.Errorf("%s: %w: %v", c, ErrCorrupt, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback, fmt.Errorf("%s: %w: %v", c, ErrCorrupt, err)
	}
	return v, nil
}

// checkEnvelope accepts exactly one JSON object whose only key is "items"
// holding an array. Anything else, such as {"likes": [...]} written by
// another program, is not ours to overwrite.
func checkEnvelope(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var doc map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after envelope")
	}
	items, ok := doc["items"]
	if !ok {
		return errors.New(`missing "items" key`)
	}
	if len(doc) != 1 {
		return fmt.Errorf("unexpected keys in envelope (%d keys)", len(doc))
	}
	if t := bytes.TrimSpace(items); len(t) == 0 || t[0] != '[' {
		return errors.New(`"items" is not an array`)
	}
	return nil
}

func writeFile(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
