// Package cache keeps fully processed stories as one JSON file per story.
// A file is served only if it carries every field of the current record layout.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/hnscope/pkg/domain"
)

// Store is a directory of cached stories
type Store struct {
	dir string
}

// New makes a store in dir, creating the directory if needed
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is not set")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Get returns the cached story if the entry exists and is complete.
// Unreadable, incomplete and outdated entries are reported as misses.
func (s *Store) Get(id int64) (*domain.Story, bool) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if !os.IsNotExist(err) {
			lgr.Printf("[WARN] can't read cache entry %d: %v", id, err)
		}
		return nil, false
	}

	if reason := checkComplete(data); reason != "" {
		lgr.Printf("[WARN] cache entry %d is incomplete, %s, reprocessing", id, reason)
		return nil, false
	}

	var story domain.Story
	if err := json.Unmarshal(data, &story); err != nil {
		lgr.Printf("[WARN] can't decode cache entry %d: %v", id, err)
		return nil, false
	}
	return &story, true
}

// Put stores the story, failures are logged and otherwise ignored
func (s *Store) Put(id int64, story *domain.Story) {
	data, err := json.MarshalIndent(story, "", "  ")
	if err != nil {
		lgr.Printf("[WARN] can't encode story %d for cache: %v", id, err)
		return
	}

	err = repeater.NewBackoff(3, 50*time.Millisecond, repeater.WithMaxDelay(500*time.Millisecond)).
		Do(context.Background(), func() error { return s.write(id, data) })
	if err != nil {
		lgr.Printf("[WARN] can't write cache entry %d: %v", id, err)
		return
	}
	lgr.Printf("[DEBUG] cached story %d", id)
}

// write replaces the entry atomically, readers see either the old or the new file
func (s *Store) write(id int64, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".story-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		return fmt.Errorf("rename to %s: %w", s.path(id), err)
	}
	return nil
}

func (s *Store) path(id int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(id, 10)+".json")
}

// checkComplete returns why the raw entry can't be served, or empty string if it can
func checkComplete(data []byte) string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Sprintf("invalid json: %v", err)
	}
	for _, f := range domain.RequiredFields {
		if _, ok := raw[f]; !ok {
			return fmt.Sprintf("missing %q", f)
		}
	}
	var version int
	if err := json.Unmarshal(raw["schema_version"], &version); err != nil || version != domain.SchemaVersion {
		return fmt.Sprintf("schema version %s, want %d", raw["schema_version"], domain.SchemaVersion)
	}
	return ""
}
