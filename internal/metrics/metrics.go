// Package metrics records operational metrics of a pipeline run through a
// pluggable backend. The default backend discards everything, so callers
// never need to check whether metrics are configured.
//
// Concrete backends live in subpackages (prompush, datadog) and are
// installed once by the CLI with SetBackend.
package metrics

import "time"

// Metric names shared by every backend.
const (
	StageTotal    = "autos_stage_total"
	StageDuration = "autos_stage_duration_seconds"
	RowsTotal     = "autos_rows_total"
	GroupsGauge   = "autos_groups"
)

// Row kinds counted by RecordRows.
const (
	RowsLoaded       = "loaded"
	RowsSkipped      = "skipped"
	RowsDroppedPrice = "dropped_price"
	RowsDroppedYear  = "dropped_year"
	RowsRetained     = "retained"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface a metrics system has to provide.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	SetGauge(name string, value float64, labels Labels)
	// Flush pushes or flushes buffered metrics. Called once at exit.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) SetGauge(string, float64, Labels)         {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs b. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage counts one execution of a pipeline stage and its duration.
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}
	backend.IncCounter(StageTotal, 1, lbls)
	backend.ObserveHistogram(StageDuration, d.Seconds(), lbls)
}

// Stage starts timing a stage; call the returned func with the stage's
// error when it finishes.
//
//	done := metrics.Stage(job, "load")
//	raw, err := load(...)
//	done(err)
func Stage(job, stage string) func(error) {
	start := time.Now()
	return func(err error) { RecordStage(job, stage, err, time.Since(start)) }
}

// RecordRows adds n rows of the given kind. Non-positive n is ignored.
func RecordRows(job, kind string, n int) {
	if n <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(n), Labels{"job": job, "kind": kind})
}

// RecordGroups sets the number of groups in the final report.
func RecordGroups(job string, n int) {
	backend.SetGauge(GroupsGauge, float64(n), Labels{"job": job})
}
