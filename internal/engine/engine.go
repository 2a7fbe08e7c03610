// Package engine runs the per-instrument signal pipeline and accumulates
// the historical snapshot table.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"MarketPulse/internal/collector"
	"MarketPulse/internal/config"
	"MarketPulse/internal/history"
	"MarketPulse/internal/metrics"
	"MarketPulse/internal/model"
	"MarketPulse/internal/strategy"
)

// RunResult is everything one engine pass produces for downstream
// consumers: the per-instrument outcomes in watchlist order, the composite
// ratio, and the snapshot appended to the history store.
type RunResult struct {
	Outcomes []model.Outcome
	Ratio    float64
	Snapshot model.Snapshot
	RunAt    time.Time
}

// Results returns only the successful indicator results, watchlist order.
func (r *RunResult) Results() []model.IndicatorResult {
	out := make([]model.IndicatorResult, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.OK() {
			out = append(out, *o.Result)
		}
	}
	return out
}

// Engine orchestrates fetch, evaluation, classification, the composite
// ratio, and the history append. One Run at a time; runs never overlap.
type Engine struct {
	cfg          *config.Config
	fetcher      collector.Fetcher
	store        *history.Store
	fetchTimeout time.Duration
	now          func() time.Time
}

// New creates an Engine over an already-loaded history store.
func New(cfg *config.Config, fetcher collector.Fetcher, store *history.Store) *Engine {
	return &Engine{
		cfg:          cfg,
		fetcher:      fetcher,
		store:        store,
		fetchTimeout: time.Duration(cfg.DataSource.FetchTimeoutSeconds) * time.Second,
		now:          time.Now,
	}
}

// Run executes one full pass. A failed fetch skips that instrument only;
// the single run-level error is a history persist failure.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	started := e.now()
	outcomes := make([]model.Outcome, 0, len(e.cfg.Watchlist))

	for _, inst := range e.cfg.Watchlist {
		series, err := e.fetch(ctx, inst)
		if err != nil {
			log.Warn().Err(err).Str("name", inst.Name).Str("symbol", inst.Symbol).
				Msg("instrument skipped, data unavailable")
			metrics.FetchFailuresTotal.WithLabelValues(inst.Symbol).Inc()
			outcomes = append(outcomes, model.Outcome{Name: inst.Name, Err: err})
			continue
		}
		res := strategy.Evaluate(series, inst.Thresholds())
		log.Info().Str("name", res.Name).Float64("price", res.Price).
			Float64("z", res.ZScore).Str("tier", res.Tier.Label).
			Msg("instrument evaluated")
		outcomes = append(outcomes, model.Outcome{Name: inst.Name, Result: res})
	}

	result := &RunResult{Outcomes: outcomes, RunAt: started}
	results := result.Results()
	result.Ratio = CompositeRatio(results, e.cfg.Composite.Numerator, e.cfg.Composite.Denominator)
	result.Snapshot = model.NewSnapshot(started, results, result.Ratio)

	e.store.Append(result.Snapshot)
	if err := e.store.Persist(); err != nil {
		return result, err
	}

	metrics.RunsTotal.Inc()
	metrics.InstrumentsComputed.Set(float64(len(results)))
	metrics.RunDuration.Observe(e.now().Sub(started).Seconds())
	return result, nil
}

func (e *Engine) fetch(ctx context.Context, inst config.Instrument) (*model.PriceSeries, error) {
	fctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	points, err := e.fetcher.FetchDailyCloses(fctx, inst.Symbol, e.cfg.DataSource.LookbackDays)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, collector.ErrNoData
	}
	return &model.PriceSeries{
		Name:      inst.Name,
		Symbol:    inst.Symbol,
		Points:    points,
		FetchedAt: e.now(),
	}, nil
}

// CompositeRatio derives priceOf(numerator)/priceOf(denominator) over the
// run's results. Defined as 0 when either instrument is absent or the
// denominator price is 0; the ratio is advisory and defaults to neutral.
func CompositeRatio(results []model.IndicatorResult, numerator, denominator string) float64 {
	var num, den *model.IndicatorResult
	for i := range results {
		switch results[i].Name {
		case numerator:
			num = &results[i]
		case denominator:
			den = &results[i]
		}
	}
	if num == nil || den == nil || den.Price == 0 {
		return 0
	}
	return num.Price / den.Price
}
