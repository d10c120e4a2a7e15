// Package cache keeps the most recent planning snapshot on disk so read
// commands can render without the planning service, and remembers the
// last-used date-range selection between sessions.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tempo/pkg/daterange"
	"tableflip.dev/tempo/pkg/plan"
)

const (
	keyEvents         = "events"
	keyLocations      = "locations"
	keyEventLocations = "event-locations"
	keyWorkCategories = "work-categories"
	keyAllocations    = "allocations"
	keyEvaluation     = "evaluation"
	keySelection      = "selection"
	keyFetchedAt      = "fetched-at"
)

// ErrEmpty is returned when the cache holds no snapshot yet.
var ErrEmpty = errors.New("cache: no snapshot stored")

// Store is a diskv-backed snapshot cache rooted at one directory.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates a Store at basePath, creating the directory when needed.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, errors.New("cache: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("cache: ensure base path: %w", err)
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// BasePath returns the cache directory.
func (s *Store) BasePath() string { return s.basePath }

// SaveSnapshot replaces the stored snapshot and stamps the fetch time.
func (s *Store) SaveSnapshot(snap plan.Snapshot) error {
	parts := map[string]interface{}{
		keyEvents:         snap.Events,
		keyLocations:      snap.Locations,
		keyEventLocations: snap.EventLocations,
		keyWorkCategories: snap.WorkCategories,
		keyAllocations:    snap.Allocations,
		keyEvaluation:     snap.Evaluation,
		keyFetchedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	for key, v := range parts {
		if err := s.write(key, v); err != nil {
			return err
		}
	}
	return nil
}

// LoadSnapshot reads the stored snapshot. ErrEmpty when nothing was pulled
// yet.
func (s *Store) LoadSnapshot() (plan.Snapshot, error) {
	if !s.d.Has(keyFetchedAt) {
		return plan.Snapshot{}, ErrEmpty
	}
	var snap plan.Snapshot
	if err := s.read(keyEvents, &snap.Events); err != nil {
		return plan.Snapshot{}, err
	}
	if err := s.read(keyLocations, &snap.Locations); err != nil {
		return plan.Snapshot{}, err
	}
	if err := s.read(keyEventLocations, &snap.EventLocations); err != nil {
		return plan.Snapshot{}, err
	}
	if err := s.read(keyWorkCategories, &snap.WorkCategories); err != nil {
		return plan.Snapshot{}, err
	}
	if err := s.read(keyAllocations, &snap.Allocations); err != nil {
		return plan.Snapshot{}, err
	}
	if err := s.read(keyEvaluation, &snap.Evaluation); err != nil {
		return plan.Snapshot{}, err
	}
	return snap, nil
}

// SaveEvaluation refreshes only the evaluation aggregates, which change
// after every confirmed mutation.
func (s *Store) SaveEvaluation(eval plan.Evaluation) error {
	return s.write(keyEvaluation, eval)
}

// SaveAllocations refreshes only the committed allocation list.
func (s *Store) SaveAllocations(allocations []plan.Allocation) error {
	return s.write(keyAllocations, allocations)
}

// FetchedAt reports when the snapshot was pulled, if one exists.
func (s *Store) FetchedAt() (time.Time, bool) {
	raw, err := s.d.Read(keyFetchedAt)
	if err != nil {
		return time.Time{}, false
	}
	var stamp string
	if err := json.Unmarshal(raw, &stamp); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SaveSelection persists the last-used date-range selection.
func (s *Store) SaveSelection(st daterange.State) error {
	return s.write(keySelection, st)
}

// LoadSelection restores the persisted selection, or a fresh default when
// none was saved.
func (s *Store) LoadSelection() (*daterange.Selection, error) {
	if !s.d.Has(keySelection) {
		return daterange.NewSelection(), nil
	}
	var st daterange.State
	if err := s.read(keySelection, &st); err != nil {
		return nil, err
	}
	return daterange.FromState(st), nil
}

func (s *Store) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) read(key string, v interface{}) error {
	if !s.d.Has(key) {
		return nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return fmt.Errorf("cache: read %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return nil
}
