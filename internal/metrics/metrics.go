// Package metrics exports arbitration counters in the Prometheus text format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/arbiter"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
)

const namespace = "robot"

// #region metrics

// Metrics is an arbiter.Observer backed by its own Prometheus registry.
// Observe runs on the control goroutine; collectors are safe to scrape
// concurrently.
type Metrics struct {
	registry *prometheus.Registry
	source   *behavior.Registry

	ticks        *prometheus.CounterVec
	selections   *prometheus.CounterVec
	modeSwitches prometheus.Counter
	enabled      prometheus.Gauge
	wheels       *prometheus.GaugeVec

	mode    arbiter.Mode
	started bool
}

// New creates the collectors. source is read on every decision to publish
// the number of enabled behaviors.
func New(source *behavior.Registry) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		source:   source,
		ticks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Control ticks by outcome.",
		}, []string{"outcome"}),
		selections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Motion commands issued, by winning behavior label or STOP.",
		}, []string{"behavior"}),
		modeSwitches: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mode_switches_total",
			Help:      "Transitions between operating and editing.",
		}),
		enabled: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "behaviors_enabled",
			Help:      "Behaviors currently taking part in arbitration.",
		}),
		wheels: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wheel_velocity",
			Help:      "Last commanded normalized wheel velocity.",
		}, []string{"wheel"}),
	}
}

// Observe implements arbiter.Observer.
func (m *Metrics) Observe(d arbiter.Decision) {
	if m.started && d.Mode != m.mode {
		m.modeSwitches.Inc()
	}
	m.mode, m.started = d.Mode, true

	m.ticks.WithLabelValues(string(d.Outcome)).Inc()
	m.enabled.Set(float64(m.source.EnabledCount()))
	if !d.Outcome.Issued() {
		return
	}
	m.selections.WithLabelValues(d.Label()).Inc()
	m.wheels.WithLabelValues("left").Set(d.Command.Left)
	m.wheels.WithLabelValues("right").Set(d.Command.Right)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// #endregion metrics

// #region serve

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve metrics: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve metrics: %w", err)
		}
		return nil
	}
}

// #endregion serve
