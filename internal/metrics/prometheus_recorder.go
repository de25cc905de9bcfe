package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "nb2md"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	fileDuration  prom.Histogram
	fileOutcomes  *prom.CounterVec
	runDuration   prom.Gauge
	workers       prom.Gauge
}

// NewPrometheusRecorder constructs and registers the conversion metrics on
// reg, or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual conversion stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		fileDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Duration of a single notebook conversion",
			Buckets:   prom.DefBuckets,
		}),
		fileOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Notebooks processed by outcome",
		}, []string{"outcome"}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the most recent conversion run",
		}),
		workers: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Worker count of the most recent conversion run",
		}),
	}

	reg.MustRegister(pr.stageDuration, pr.fileDuration, pr.fileOutcomes, pr.runDuration, pr.workers)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveFileDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.fileDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFileOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.fileOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Set(d.Seconds())
}

func (p *PrometheusRecorder) SetWorkers(n int) {
	if p == nil {
		return
	}
	p.workers.Set(float64(n))
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format, replacing the file atomically, for node_exporter's textfile
// collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
