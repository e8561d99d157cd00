// Package store owns the in-memory activity set. All reads and edits go
// through it; facet options are re-derived on every change so filtered
// results always reflect the latest committed set.
package store

import (
	"sync"

	"github.com/DanielTheTeacher/ActivityHub/internal/catalog"
)

type Store struct {
	mu         sync.RWMutex
	activities []catalog.Activity
	options    catalog.FilterOptions
}

func New(activities []catalog.Activity) *Store {
	s := &Store{}
	s.Replace(activities)
	return s
}

// Replace atomically swaps in a freshly loaded activity set.
func (s *Store) Replace(activities []catalog.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append([]catalog.Activity(nil), activities...)
	s.options = catalog.Extract(s.activities)
}

// Options returns the facet options for the current set. The contained
// slices are shared; callers must treat them as read-only.
func (s *Store) Options() catalog.FilterOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options
}

// Count reports the size of the full set.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// List evaluates the composite filter predicate and returns the matching
// subset in set order.
func (s *Store) List(f catalog.Filters) []catalog.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Apply(s.activities, f)
}

// Get resolves an activity by id. A miss is not an error, just not found.
func (s *Store) Get(id string) (catalog.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.activities {
		if a.ID == id {
			return a, true
		}
	}
	return catalog.Activity{}, false
}

// Update replaces the whole record under an existing id. The incoming raw
// record goes through the same tag default-merge as ingestion, so partial
// tag objects still produce a fully populated tag set. The id is stable
// across edits.
func (s *Store) Update(id string, rec catalog.RawRecord) (catalog.Activity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.activities {
		if a.ID != id {
			continue
		}
		updated := catalog.FromRaw(id, rec)
		s.activities[i] = updated
		s.options = catalog.Extract(s.activities)
		return updated, true
	}
	return catalog.Activity{}, false
}

// Delete removes an activity by id.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.activities {
		if a.ID != id {
			continue
		}
		s.activities = append(s.activities[:i], s.activities[i+1:]...)
		s.options = catalog.Extract(s.activities)
		return true
	}
	return false
}

// Export serializes the current set for download. Generated ids are
// omitted: a re-imported file gets fresh slugs.
func (s *Store) Export() []catalog.ExportRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.ExportRecord, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, catalog.ExportRecord{
			Title:           a.Title,
			FullDescription: a.FullDescription,
			Tags:            a.Tags,
		})
	}
	return out
}
