// Package metrics exposes search counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Search outcome labels.
const (
	OutcomePopulated          = "populated"
	OutcomeNoResults          = "no_results"
	OutcomeTransportFailure   = "transport_failure"
	OutcomeApplicationFailure = "application_failure"
	OutcomeStale              = "stale"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propertyfinder",
			Name:      "searches_total",
			Help:      "Completed searches by outcome.",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "propertyfinder",
			Name:      "search_duration_seconds",
			Help:      "Time from submission to a routed outcome.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// ObserveSearch records one search outcome. Stale outcomes are counted but
// not timed.
func ObserveSearch(outcome string, elapsed time.Duration) {
	SearchesTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeStale {
		SearchDuration.Observe(elapsed.Seconds())
	}
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Str("addr", addr).Msg("metrics server stopped")
	}
}
