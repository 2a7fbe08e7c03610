package history

import (
	"fmt"
	"testing"

	"MarketPulse/internal/model"
)

func snap(key string, ratio float64, prices map[string]float64) model.Snapshot {
	return model.Snapshot{Key: key, Prices: prices, Ratio: ratio}
}

func TestStore_AppendKeepLast(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	s.Load()

	s.Append(snap("2025-01-02 09:00", 0.85, map[string]float64{"HYG": 79, "LQD": 93}))
	s.Append(snap("2025-01-02 09:00", 0.90, map[string]float64{"HYG": 80, "LQD": 89}))

	if s.Len() != 1 {
		t.Fatalf("duplicate key must keep one row, got %d", s.Len())
	}
	got, ok := s.Get("2025-01-02 09:00")
	if !ok {
		t.Fatal("row missing")
	}
	if got.Ratio != 0.90 || got.Prices["HYG"] != 80 {
		t.Errorf("expected second write retained, got %+v", got)
	}
}

func TestStore_RecentWindow(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	s.Load()
	for i := 0; i < 10; i++ {
		s.Append(snap(fmt.Sprintf("2025-01-%02d 09:00", i+1), float64(i), nil))
	}

	recent := s.RecentWindow(3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(recent))
	}
	for i, want := range []string{"2025-01-08 09:00", "2025-01-09 09:00", "2025-01-10 09:00"} {
		if recent[i].Key != want {
			t.Errorf("row %d: expected %s, got %s", i, want, recent[i].Key)
		}
	}

	if got := s.RecentWindow(100); len(got) != 10 {
		t.Errorf("n > len: expected all 10 rows, got %d", len(got))
	}
	if got := s.RecentWindow(0); got != nil {
		t.Errorf("n=0: expected nil, got %v", got)
	}
}

func TestStore_AppendOutOfOrderStaysChronological(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	s.Load()
	s.Append(snap("2025-03-01 09:00", 0, nil))
	s.Append(snap("2025-01-01 09:00", 0, nil))
	s.Append(snap("2025-02-01 09:00", 0, nil))

	all := s.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("rows out of order: %s before %s", all[i-1].Key, all[i].Key)
		}
	}
}

func TestStore_PersistReload(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	s.Load()
	s.Append(snap("2025-01-01 09:00", 0.85, map[string]float64{"HYG": 79}))
	if err := s.Persist(); err != nil {
		t.Fatal(err)
	}

	s2 := NewStore(backend)
	s2.Load()
	if s2.Len() != 1 {
		t.Fatalf("expected 1 row after reload, got %d", s2.Len())
	}
}
