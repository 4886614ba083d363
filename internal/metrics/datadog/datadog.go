// Package datadog sends run metrics to a DogStatsD agent.
package datadog

import (
	"fmt"
	"sort"

	"github.com/DataDog/datadog-go/v5/statsd"

	"autos/internal/metrics"
)

// Config holds the DogStatsD client settings.
type Config struct {
	// Addr is "host:port" or "unix:///path". Empty lets the client read
	// DD_AGENT_HOST / DD_DOGSTATSD_URL.
	Addr string
	// Namespace prefixes every metric name, e.g. "autos.".
	Namespace string
	// GlobalTags are added to every metric, e.g. "run_id:...".
	GlobalTags []string
}

// Backend is a DogStatsD implementation of metrics.Backend.
type Backend struct {
	client statsd.ClientInterface
}

// NewBackend dials the agent described by cfg.
func NewBackend(cfg Config) (*Backend, error) {
	opts := []statsd.Option{statsd.WithoutTelemetry()}
	if cfg.Namespace != "" {
		opts = append(opts, statsd.WithNamespace(cfg.Namespace))
	}
	if len(cfg.GlobalTags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.GlobalTags))
	}
	c, err := statsd.New(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("datadog: create client: %w", err)
	}
	return &Backend{client: c}, nil
}

// IncCounter sends a Count; fractional deltas are truncated.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	_ = b.client.Count(name, int64(delta), tags(labels), 1)
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	_ = b.client.Histogram(name, value, tags(labels), 1)
}

func (b *Backend) SetGauge(name string, value float64, labels metrics.Labels) {
	_ = b.client.Gauge(name, value, tags(labels), 1)
}

// Flush closes the client, which sends whatever is buffered.
func (b *Backend) Flush() error {
	return b.client.Close()
}

// tags renders labels as sorted "key:value" tags.
func tags(lbls metrics.Labels) []string {
	if len(lbls) == 0 {
		return nil
	}
	out := make([]string, 0, len(lbls))
	for k, v := range lbls {
		out = append(out, k+":"+v)
	}
	sort.Strings(out)
	return out
}
