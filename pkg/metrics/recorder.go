// Package metrics exposes Prometheus collectors for reconstruction runs.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/aretw0/replica/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so several drivers (or tests) never collide
// on the global one.
type Recorder struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lastExit *prometheus.GaugeVec
}

// NewRecorder creates and registers the reconstruction collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "replica_reconstructions_total",
				Help: "Total number of reconstruction runs by outcome",
			},
			[]string{"dataset", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "replica_reconstruction_duration_seconds",
				Help:    "Wall time of fuse_replica executions",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"dataset"},
		),
		lastExit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "replica_last_exit_code",
				Help: "Exit code of the most recent fuse_replica execution",
			},
			[]string{"dataset"},
		),
	}
	r.registry.MustRegister(r.runs, r.duration, r.lastExit)
	return r
}

// Observe records a finished run.
func (r *Recorder) Observe(run domain.Run) {
	r.runs.WithLabelValues(run.Dataset, string(run.Outcome)).Inc()
	r.duration.WithLabelValues(run.Dataset).Observe(run.Duration.Seconds())
	r.lastExit.WithLabelValues(run.Dataset).Set(float64(run.ExitCode))
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile dumps the collectors to path, for node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
