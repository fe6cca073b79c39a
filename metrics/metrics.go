// SPDX-License-Identifier: MIT

// Package metrics exports run metrics through Prometheus.
//
// A Recorder registers its collectors on a caller-supplied registry, so
// tests and the CLI never touch the global default registry. Per-item
// envelope sizes come in through Recorder.OnStep (wired as
// solver.WithOnStep); Recorder.Observe books the finished run.
//
// All methods are safe for concurrent use.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/emmelineperneel/UJSSP/solver"
)

const namespace = "ujssp"

// Candidate kinds of the candidates_total counter.
const (
	KindConsidered   = "considered"
	KindMaterialized = "materialized"
	KindRemoved      = "removed"
)

// Recorder holds the run collectors.
type Recorder struct {
	// RunsTotal counts finished runs.
	// Labels: mode, state (done, timed_out)
	RunsTotal *prometheus.CounterVec

	// RunDuration is the wall-clock time per run.
	// Labels: mode
	RunDuration *prometheus.HistogramVec

	// CandidatesTotal counts candidate work.
	// Labels: mode, kind (considered, materialized, removed)
	CandidatesTotal *prometheus.CounterVec

	// EnvelopeSize samples the envelope size after every item.
	// Labels: mode
	EnvelopeSize *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		RunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Finished solver runs by mode and final state",
			},
			[]string{"mode", "state"},
		),
		RunDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall-clock duration of solver runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"mode"},
		),
		CandidatesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidates_total",
				Help:      "Candidates considered, materialized and removed",
			},
			[]string{"mode", "kind"},
		),
		EnvelopeSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "envelope_size",
				Help:      "Envelope size after each processed item",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
			},
			[]string{"mode"},
		),
	}
}

// OnStep records one processed item. Use it as solver.WithOnStep(r.OnStep).
func (r *Recorder) OnStep(s solver.StepInfo) {
	r.EnvelopeSize.WithLabelValues(s.Mode.String()).Observe(float64(s.Size))
}

// Observe books a finished run.
func (r *Recorder) Observe(res solver.Result) {
	mode := res.Mode.String()
	r.RunsTotal.WithLabelValues(mode, res.State.String()).Inc()
	r.RunDuration.WithLabelValues(mode).Observe(res.Elapsed.Seconds())
	r.CandidatesTotal.WithLabelValues(mode, KindConsidered).Add(float64(res.Considered))
	r.CandidatesTotal.WithLabelValues(mode, KindMaterialized).Add(float64(res.Materialized))
	r.CandidatesTotal.WithLabelValues(mode, KindRemoved).Add(float64(res.Removed))
}

// WriteTextfile writes every metric of g to path in the text exposition
// format, for the node exporter's textfile collector.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, g)
}
