package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"MarketPulse/internal/collector"
	"MarketPulse/internal/config"
	"MarketPulse/internal/history"
	"MarketPulse/internal/model"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Watchlist = []config.Instrument{
		{Name: "S&P 500", Symbol: "^GSPC"},
		{Name: "HYG", Symbol: "HYG"},
		{Name: "LQD", Symbol: "LQD"},
	}
	cfg.Composite.Name = "HYG/LQD"
	cfg.Composite.Numerator = "HYG"
	cfg.Composite.Denominator = "LQD"
	cfg.DataSource.LookbackDays = 365
	cfg.DataSource.FetchTimeoutSeconds = 5
	return cfg
}

func flatCloses(level float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = level
	}
	return closes
}

func newTestEngine(cfg *config.Config, fetcher collector.Fetcher) (*Engine, *history.Store) {
	store := history.NewStore(history.NewMemoryBackend())
	store.Load()
	return New(cfg, fetcher, store), store
}

func TestRun_CompositeRatio(t *testing.T) {
	cfg := testConfig()
	fetcher := &collector.MockFetcher{Closes: map[string][]float64{
		"^GSPC": flatCloses(5800, 100),
		"HYG":   flatCloses(80, 100),
		"LQD":   flatCloses(100, 100),
	}}
	eng, store := newTestEngine(cfg, fetcher)

	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(result.Ratio-0.8) > 1e-12 {
		t.Errorf("expected ratio 80/100=0.8, got %f", result.Ratio)
	}
	if len(result.Results()) != 3 {
		t.Fatalf("expected 3 results, got %d", len(result.Results()))
	}
	if store.Len() != 1 {
		t.Errorf("expected exactly one appended snapshot, got %d", store.Len())
	}
	if result.Snapshot.Prices["HYG"] != 80 {
		t.Errorf("snapshot missing HYG price: %+v", result.Snapshot)
	}
}

func TestRun_FailedFetchIsIsolated(t *testing.T) {
	cfg := testConfig()
	fetcher := &collector.MockFetcher{
		Closes: map[string][]float64{
			"^GSPC": flatCloses(5800, 100),
			"HYG":   flatCloses(80, 100),
		},
		Errs: map[string]error{"LQD": collector.ErrNoData},
	}
	eng, _ := newTestEngine(cfg, fetcher)

	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("a failed instrument must not fail the run: %v", err)
	}

	// LQD missing → ratio defaults to neutral
	if result.Ratio != 0 {
		t.Errorf("expected ratio 0 with LQD missing, got %f", result.Ratio)
	}
	results := result.Results()
	if len(results) != 2 {
		t.Fatalf("expected 2 successful results, got %d", len(results))
	}
	if len(result.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(result.Outcomes))
	}
	var lqd *model.Outcome
	for i := range result.Outcomes {
		if result.Outcomes[i].Name == "LQD" {
			lqd = &result.Outcomes[i]
		}
	}
	if lqd == nil || lqd.OK() || !errors.Is(lqd.Err, collector.ErrNoData) {
		t.Errorf("LQD outcome should carry the fetch error, got %+v", lqd)
	}
	if _, present := result.Snapshot.Prices["LQD"]; present {
		t.Error("failed instrument must contribute no snapshot column")
	}
}

func TestRun_SameMinuteRunsOverwrite(t *testing.T) {
	cfg := testConfig()
	fetcher := &collector.MockFetcher{Closes: map[string][]float64{
		"^GSPC": flatCloses(5800, 100),
		"HYG":   flatCloses(80, 100),
		"LQD":   flatCloses(100, 100),
	}}
	eng, store := newTestEngine(cfg, fetcher)
	fixed := time.Date(2025, 6, 2, 9, 30, 12, 0, time.UTC)
	eng.now = func() time.Time { return fixed }

	if _, err := eng.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	fetcher.Closes["HYG"] = flatCloses(81, 100)
	result, err := eng.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if store.Len() != 1 {
		t.Fatalf("same-minute runs must dedup by key, got %d rows", store.Len())
	}
	got, _ := store.Get(result.Snapshot.Key)
	if got.Prices["HYG"] != 81 {
		t.Errorf("expected second run's values retained, got %+v", got)
	}
}

func TestRun_ColdStartProducesOneRow(t *testing.T) {
	cfg := testConfig()
	fetcher := &collector.MockFetcher{Price: 100}
	eng, store := newTestEngine(cfg, fetcher)

	if store.Len() != 0 {
		t.Fatalf("cold start: expected empty table, got %d", store.Len())
	}
	if _, err := eng.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Errorf("after one run: expected one row, got %d", store.Len())
	}
}

func TestCompositeRatio(t *testing.T) {
	results := []model.IndicatorResult{
		{Name: "HYG", Price: 79.5},
		{Name: "LQD", Price: 92.4},
	}
	want := 79.5 / 92.4
	if got := CompositeRatio(results, "HYG", "LQD"); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
	if got := CompositeRatio(results[:1], "HYG", "LQD"); got != 0 {
		t.Errorf("missing denominator: expected 0, got %f", got)
	}
	if got := CompositeRatio(nil, "HYG", "LQD"); got != 0 {
		t.Errorf("empty results: expected 0, got %f", got)
	}
	zeroDen := []model.IndicatorResult{{Name: "HYG", Price: 79.5}, {Name: "LQD", Price: 0}}
	if got := CompositeRatio(zeroDen, "HYG", "LQD"); got != 0 {
		t.Errorf("zero denominator: expected 0, got %f", got)
	}
}
