// Package store keeps small JSON documents on disk, one file per key, and
// reports changes made by other processes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNotFound is returned by Get for a key that was never written or has
// been deleted.
var ErrNotFound = errors.New("store: key not found")

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// Dir is a Config rooted at a directory.
type Dir string

// BasePath implements Config.
func (d Dir) BasePath() string { return string(d) }

// Store is a directory of JSON documents.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Open prepares the directory named by cfg, creating it owner-only.
func Open(cfg Config) (*Store, error) {
	if cfg == nil || cfg.BasePath() == "" {
		return nil, errors.New("store: base path is required")
	}
	base := cfg.BasePath()
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          base,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// No cache: another process may rewrite a key at any time.
			CacheSizeMax: 0,
			PathPerm:     0o700,
			FilePerm:     0o600,
		}),
		basePath: base,
	}, nil
}

// BasePath returns the directory backing the store.
func (s *Store) BasePath() string { return s.basePath }

// Get decodes the document at key into v.
func (s *Store) Get(key string, v any) error {
	if err := validKey(key); err != nil {
		return err
	}
	b, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

// Put encodes v as the document at key.
func (s *Store) Put(key string, v any) error {
	if err := validKey(key); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.d.Write(key, b); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// Has reports whether key exists.
func (s *Store) Has(key string) bool {
	return validKey(key) == nil && s.d.Has(key)
}

// Keys lists every key, sorted.
func (s *Store) Keys() []string {
	var keys []string
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.HasSuffix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}

// Keys are slash separated; every segment but the last is a directory.
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pk.Path...), pk.FileName), "/")
}
