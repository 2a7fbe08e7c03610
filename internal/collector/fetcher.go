package collector

import (
	"context"
	"errors"

	"MarketPulse/internal/model"
)

// ErrNoData marks a provider response that contained no usable bars. The
// engine treats it (and any other fetch error) as data-unavailable for that
// instrument only.
var ErrNoData = errors.New("no price data returned")

// Fetcher supplies a trailing window of daily closes for a symbol. The
// context carries the per-call deadline; implementations must honor it.
type Fetcher interface {
	FetchDailyCloses(ctx context.Context, symbol string, days int) ([]model.PricePoint, error)
	Name() string
}
