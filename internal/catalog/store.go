// Package catalog loads and caches the per-collection JSON files
// (data/<collection>.json). Records are immutable once loaded; the only
// write path is the admin upsert, which rewrites the whole file the same
// way the edit form used to produce a replacement download.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"github.com/georgiajedi/catalog/internal/models"
)

var collectionNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Store serves catalog records by collection name.
type Store struct {
	dataDir string

	mu          sync.RWMutex
	collections map[string][]models.Record
}

// NewStore creates a store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{
		dataDir:     dataDir,
		collections: map[string][]models.Record{},
	}
}

func (s *Store) path(collection string) (string, error) {
	if !collectionNameRe.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	return filepath.Join(s.dataDir, collection+".json"), nil
}

// Records returns the collection's records, loading the JSON file on
// first use. The returned slice is shared; callers must not mutate it.
func (s *Store) Records(collection string) ([]models.Record, error) {
	s.mu.RLock()
	records, ok := s.collections[collection]
	s.mu.RUnlock()
	if ok {
		return records, nil
	}

	path, err := s.path(collection)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", collection, err)
	}

	s.mu.Lock()
	s.collections[collection] = records
	s.mu.Unlock()
	slog.Info("Collection loaded", "collection", collection, "records", len(records))
	return records, nil
}

// Find returns the record with the given id.
func (s *Store) Find(collection, id string) (models.Record, error) {
	records, err := s.Records(collection)
	if err != nil {
		return models.Record{}, err
	}
	for _, r := range records {
		if r.ID.String() == id {
			return r, nil
		}
	}
	return models.Record{}, fmt.Errorf("record %s not found in %s", id, collection)
}

// NextID returns max(numeric ids)+1 for new records. Non-numeric ids are
// ignored, matching the add-item form's behavior.
func (s *Store) NextID(collection string) (int, error) {
	records, err := s.Records(collection)
	if err != nil {
		return 0, err
	}
	maxID := 0
	for _, r := range records {
		if n, err := strconv.Atoi(r.ID.String()); err == nil && n > maxID {
			maxID = n
		}
	}
	return maxID + 1, nil
}

// Upsert replaces the record matching rec.ID or appends it when absent
// (assigning the next id if rec.ID is empty), then rewrites the
// collection file pretty-printed.
func (s *Store) Upsert(collection string, rec models.Record) (models.Record, error) {
	records, err := s.Records(collection)
	if err != nil {
		return models.Record{}, err
	}

	if rec.ID == "" {
		next, err := s.NextID(collection)
		if err != nil {
			return models.Record{}, err
		}
		rec.ID = models.FlexString(strconv.Itoa(next))
	}

	updated := make([]models.Record, len(records))
	copy(updated, records)
	replaced := false
	for i, r := range updated {
		if r.ID.String() == rec.ID.String() {
			updated[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		updated = append(updated, rec)
	}

	if err := s.write(collection, updated); err != nil {
		return models.Record{}, err
	}

	s.mu.Lock()
	s.collections[collection] = updated
	s.mu.Unlock()
	slog.Info("Collection updated", "collection", collection, "id", rec.ID.String(), "replaced", replaced)
	return rec, nil
}

func (s *Store) write(collection string, records []models.Record) error {
	path, err := s.path(collection)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", collection, err)
	}
	data = append(data, '\n')
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}
	return nil
}
