package cache

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"
)

// Record is the durable state of the relay, a tiny JSON object on disk.
// LastEntryID names the newest entry delivered in a prior run and never
// regresses to an older one.
type Record struct {
	ETag        string `json:"etag"`
	Modified    string `json:"modified"`
	LastEntryID string `json:"last_entry_id"`
}

// Store persists a Record as a JSON file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted record. A missing or unparseable file is not an
// error, the run just starts over with an empty record.
func (s *Store) Load() Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		lgr.Printf("[WARN] no usable cache file at %s, starting with empty record: %v", s.path, err)
		return Record{}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		lgr.Printf("[WARN] corrupt cache file %s, starting with empty record: %v", s.path, err)
		return Record{}
	}
	return rec
}

// Save writes the record to a temp file and renames it over the target,
// so a crash mid-write leaves the previous file intact for the next load.
func (s *Store) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
