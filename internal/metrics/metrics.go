package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "marketpulse_runs_total", Help: "Signal engine runs completed"},
	)
	FetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "marketpulse_fetch_failures_total", Help: "Price fetches that returned no usable data"},
		[]string{"symbol"},
	)
	InstrumentsComputed = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "marketpulse_instruments_computed", Help: "Instruments with a result in the latest run"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "marketpulse_run_duration_seconds", Help: "Wall time of one full run"},
	)
)

func init() {
	prometheus.MustRegister(RunsTotal, FetchFailuresTotal, InstrumentsComputed, RunDuration)
}

// Serve exposes /metrics on addr in a background goroutine.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
