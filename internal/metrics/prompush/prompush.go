// Package prompush pushes run metrics to a Prometheus Pushgateway.
//
// A batch run has nothing to scrape, so the collectors live in a private
// registry which Flush pushes once, grouped by job and run id.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"autos/internal/metrics"
)

// Backend is a Pushgateway implementation of metrics.Backend.
type Backend struct {
	gatewayURL string
	jobName    string
	runID      string
	reg        *prometheus.Registry

	stages   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     *prometheus.CounterVec
	groups   prometheus.Gauge
}

// NewBackend builds a backend pushing to gatewayURL under jobName. A
// non-empty runID is added as a grouping label.
func NewBackend(jobName, gatewayURL, runID string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "autos"
	}

	b := &Backend{
		gatewayURL: gatewayURL,
		jobName:    jobName,
		runID:      runID,
		reg:        prometheus.NewRegistry(),
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.StageTotal,
			Help: "Pipeline stage executions by stage and status.",
		}, []string{"stage", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    metrics.StageDuration,
			Help:    "Pipeline stage duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"stage", "status"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.RowsTotal,
			Help: "Listing rows by kind (loaded, dropped_price, dropped_year, retained).",
		}, []string{"kind"}),
		groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metrics.GroupsGauge,
			Help: "Number of groups in the final report.",
		}),
	}
	for _, c := range []prometheus.Collector{b.stages, b.duration, b.rows, b.groups} {
		if err := b.reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register collector: %w", err)
		}
	}
	return b, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case metrics.StageTotal:
		b.stages.WithLabelValues(labels["stage"], labels["status"]).Add(delta)
	case metrics.RowsTotal:
		b.rows.WithLabelValues(labels["kind"]).Add(delta)
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != metrics.StageDuration {
		return
	}
	b.duration.WithLabelValues(labels["stage"], labels["status"]).Observe(value)
}

func (b *Backend) SetGauge(name string, value float64, _ metrics.Labels) {
	if name == metrics.GroupsGauge {
		b.groups.Set(value)
	}
}

// Flush pushes the registry to the Pushgateway, replacing the group.
func (b *Backend) Flush() error {
	p := push.New(b.gatewayURL, b.jobName).Gatherer(b.reg)
	if b.runID != "" {
		p = p.Grouping("run_id", b.runID)
	}
	if err := p.Push(); err != nil {
		return fmt.Errorf("prompush: push to %s: %w", b.gatewayURL, err)
	}
	return nil
}
