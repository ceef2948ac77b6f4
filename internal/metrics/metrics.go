// Package metrics exposes refresh and activation counters for the thread
// view on a Prometheus registry of its own.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nixlim/threadscope/internal/threads"
)

// Recorder implements threads.Observer.
type Recorder struct {
	registry *prometheus.Registry

	refreshes *prometheus.CounterVec
	rowDelta  *prometheus.CounterVec
	switches  *prometheus.CounterVec
	rows      prometheus.Gauge
}

var _ threads.Observer = (*Recorder)(nil)

// New creates a Recorder with every series registered on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	r := &Recorder{
		registry: reg,
		refreshes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threadscope_refresh_total",
				Help: "Refresh attempts by outcome",
			},
			[]string{"outcome"},
		),
		rowDelta: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threadscope_reconcile_rows_total",
				Help: "Rows touched by reconciliation, by kind",
			},
			[]string{"kind"},
		),
		switches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threadscope_thread_switch_total",
				Help: "Row activations by result",
			},
			[]string{"result"},
		),
		rows: f.NewGauge(prometheus.GaugeOpts{
			Name: "threadscope_rows",
			Help: "Rows currently in the thread table",
		}),
	}

	// Pre-create label values so every series is exported from the start.
	for _, o := range []threads.Outcome{threads.OutcomeSuppressed, threads.OutcomeNoSession, threads.OutcomeInFlight, threads.OutcomeLive} {
		r.refreshes.WithLabelValues(o.String())
	}
	for _, k := range []string{"changed", "appended", "removed"} {
		r.rowDelta.WithLabelValues(k)
	}
	for _, a := range []threads.ActivationResult{threads.ActivationInvalid, threads.ActivationSwitched, threads.ActivationStale, threads.ActivationSkipped} {
		r.switches.WithLabelValues(a.String())
	}
	return r
}

// ObserveRefresh counts one refresh attempt. Suppressed attempts leave the
// row gauge alone because the model was not touched.
func (r *Recorder) ObserveRefresh(outcome threads.Outcome, delta threads.Delta, rows int) {
	r.refreshes.WithLabelValues(outcome.String()).Inc()
	r.rowDelta.WithLabelValues("changed").Add(float64(delta.Changed))
	r.rowDelta.WithLabelValues("appended").Add(float64(delta.Appended))
	r.rowDelta.WithLabelValues("removed").Add(float64(delta.Removed))
	if outcome != threads.OutcomeSuppressed {
		r.rows.Set(float64(rows))
	}
}

// ObserveActivation counts one activation.
func (r *Recorder) ObserveActivation(result threads.ActivationResult) {
	r.switches.WithLabelValues(result.String()).Inc()
}

// TrackDropped exports the notification drop count reported by dropped.
func (r *Recorder) TrackDropped(dropped func() uint64) {
	promauto.With(r.registry).NewCounterFunc(
		prometheus.CounterOpts{
			Name: "threadscope_notifications_dropped_total",
			Help: "Session notifications dropped because a subscriber was full",
		},
		func() float64 { return float64(dropped()) },
	)
}

// Registry returns the registry the series live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
