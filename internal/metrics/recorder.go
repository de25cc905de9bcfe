// Package metrics records conversion run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so callers never
// nil-check before recording. PrometheusRecorder backs the CLI's
// --metrics-file flag, which exports the registry in the node_exporter
// textfile format after each run.
package metrics

import "time"

// Outcome labels the result of converting one notebook.
type Outcome string

const (
	OutcomeConverted Outcome = "converted"
	OutcomeMalformed Outcome = "malformed"
	OutcomeFailed    Outcome = "failed"
	OutcomeCanceled  Outcome = "canceled"
)

// Recorder defines observability hooks for a conversion run.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveFileDuration(d time.Duration)
	IncFileOutcome(outcome Outcome)
	ObserveRunDuration(d time.Duration)
	SetWorkers(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveFileDuration(time.Duration)         {}
func (NoopRecorder) IncFileOutcome(Outcome)                    {}
func (NoopRecorder) ObserveRunDuration(time.Duration)          {}
func (NoopRecorder) SetWorkers(int)                            {}
