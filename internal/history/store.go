package history

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"MarketPulse/internal/model"
)

// Backend persists the full snapshot table. Implementations must treat
// SaveAll as a complete rewrite of the previous state.
type Backend interface {
	LoadAll() ([]model.Snapshot, error)
	SaveAll(snaps []model.Snapshot) error
	Close() error
}

// Store is the in-memory history table: at most one snapshot per key,
// keep-last on collision. Exclusively owned by one run at a time.
type Store struct {
	backend Backend
	rows    map[string]model.Snapshot
	keys    []string // sorted ascending; lexical order == chronological
}

// NewStore creates an empty store over the given backend.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		rows:    make(map[string]model.Snapshot),
	}
}

// Load replaces the table with the backend's persisted rows. A missing or
// unreadable persisted form degrades to an empty table; it never fails the
// run.
func (s *Store) Load() {
	snaps, err := s.backend.LoadAll()
	if err != nil {
		log.Warn().Err(err).Msg("history unreadable, starting from empty table")
		snaps = nil
	}
	s.rows = make(map[string]model.Snapshot, len(snaps))
	s.keys = s.keys[:0]
	for _, snap := range snaps {
		s.insert(snap)
	}
}

// Append inserts the snapshot, overwriting any existing row with the same
// key (keep-last).
func (s *Store) Append(snap model.Snapshot) {
	s.insert(snap)
}

func (s *Store) insert(snap model.Snapshot) {
	if _, exists := s.rows[snap.Key]; !exists {
		i := sort.SearchStrings(s.keys, snap.Key)
		s.keys = append(s.keys, "")
		copy(s.keys[i+1:], s.keys[i:])
		s.keys[i] = snap.Key
	}
	s.rows[snap.Key] = snap
}

// Persist writes the full table back through the backend, replacing the
// previous persisted form. This is the one history failure that must reach
// the operator.
func (s *Store) Persist() error {
	if err := s.backend.SaveAll(s.All()); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.rows) }

// Get returns the snapshot for key, if present.
func (s *Store) Get(key string) (model.Snapshot, bool) {
	snap, ok := s.rows[key]
	return snap, ok
}

// All returns every snapshot in chronological order.
func (s *Store) All() []model.Snapshot {
	out := make([]model.Snapshot, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.rows[k])
	}
	return out
}

// RecentWindow returns the last n snapshots in chronological order, or all
// of them when the table holds fewer than n.
func (s *Store) RecentWindow(n int) []model.Snapshot {
	if n <= 0 {
		return nil
	}
	all := s.All()
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}
