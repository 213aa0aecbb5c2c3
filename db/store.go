package db

import (
	"errors"
	"sync"

	"escolas-map/metrics"
)

var ErrNoSnapshot = errors.New("no school data loaded")

// Store holds the current school snapshot. Imports swap it while requests read it.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a Store, optionally seeded with a snapshot
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	if snap != nil {
		s.Replace(snap)
	}
	return s
}

// Current returns the active snapshot, or ErrNoSnapshot before the first load
func (s *Store) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNoSnapshot
	}
	return s.snap, nil
}

// Replace makes snap the active snapshot
func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	metrics.SchoolsLoaded.Set(float64(len(snap.Schools)))
	metrics.RowsDropped.Set(float64(snap.Dropped))
}
