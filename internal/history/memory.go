package history

import "MarketPulse/internal/model"

// MemoryBackend keeps the persisted form in memory. Used when no database
// is configured and in tests.
type MemoryBackend struct {
	snaps []model.Snapshot
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (m *MemoryBackend) LoadAll() ([]model.Snapshot, error) {
	out := make([]model.Snapshot, len(m.snaps))
	copy(out, m.snaps)
	return out, nil
}

func (m *MemoryBackend) SaveAll(snaps []model.Snapshot) error {
	m.snaps = make([]model.Snapshot, len(snaps))
	copy(m.snaps, snaps)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
