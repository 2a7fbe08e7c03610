package history

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"MarketPulse/internal/model"
)

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	backend, err := NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatal(err)
	}

	in := []model.Snapshot{
		{Key: "2025-01-01 09:00", Prices: map[string]float64{"HYG": 79.12, "LQD": 92.75}, Ratio: 0.8531},
		{Key: "2025-01-02 09:00", Prices: map[string]float64{"HYG": 79.44}, Ratio: 0},
	}
	if err := backend.SaveAll(in); err != nil {
		t.Fatal(err)
	}
	if err := backend.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen and verify the table reproduces.
	backend, err = NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer backend.Close()

	out, err := backend.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(out))
	}
	if out[0].Key != "2025-01-01 09:00" || out[1].Key != "2025-01-02 09:00" {
		t.Errorf("keys out of order: %s, %s", out[0].Key, out[1].Key)
	}
	if math.Abs(out[0].Prices["HYG"]-79.12) > 1e-9 || math.Abs(out[0].Ratio-0.8531) > 1e-9 {
		t.Errorf("first snapshot values wrong: %+v", out[0])
	}
	if _, present := out[1].Prices["LQD"]; present {
		t.Error("LQD had no observation in the second snapshot")
	}
}

func TestSQLiteBackend_SaveAllRewrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	backend, err := NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer backend.Close()

	first := []model.Snapshot{{Key: "2025-01-01 09:00", Prices: map[string]float64{"HYG": 1}}}
	if err := backend.SaveAll(first); err != nil {
		t.Fatal(err)
	}
	second := []model.Snapshot{{Key: "2025-02-01 09:00", Prices: map[string]float64{"HYG": 2}}}
	if err := backend.SaveAll(second); err != nil {
		t.Fatal(err)
	}

	out, err := backend.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Key != "2025-02-01 09:00" {
		t.Fatalf("SaveAll must replace prior state, got %+v", out)
	}
}

func TestStore_LoadCorruptDatabaseStartsEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	if err := os.WriteFile(dbPath, []byte("this is not a sqlite file"), 0644); err != nil {
		t.Fatal(err)
	}

	backend, err := NewSQLiteBackend(dbPath)
	if err != nil {
		// Rejected at open: the caller falls back to the memory backend,
		// which is also an empty table. Acceptable outcome.
		return
	}
	defer backend.Close()

	s := NewStore(backend)
	s.Load()
	if s.Len() != 0 {
		t.Errorf("corrupt prior state must yield empty table, got %d rows", s.Len())
	}
}
