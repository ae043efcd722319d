// Package metrics exposes the operational counters over prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scrimhub/scrimbot/pkg/logger"
)

var (
	QueueSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scrimbot_queue_size",
		Help: "Players currently waiting in the queue.",
	})

	ReadyChecksStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrimbot_ready_checks_started_total",
		Help: "Ready-checks launched.",
	})

	ReadyChecksExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrimbot_ready_checks_expired_total",
		Help: "Ready-checks that timed out with unconfirmed players.",
	})

	MatchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrimbot_matches_started_total",
		Help: "Matches created from completed ready-checks.",
	})

	MatchesFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrimbot_matches_finalized_total",
		Help: "Matches closed with ratings applied.",
	})

	MatchesReversed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrimbot_matches_reversed_total",
		Help: "Closed matches whose result was rolled back.",
	})

	MatchesCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrimbot_matches_canceled_total",
		Help: "Matches abandoned without a result.",
	})

	VetoAutoBans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scrimbot_veto_auto_bans_total",
		Help: "Veto turns resolved by the timeout auto-ban.",
	})
)

// Serve exposes /metrics on addr in a background goroutine.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listener started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics listener failed", "error", err)
		}
	}()

	return srv
}
