package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"autos/internal/metrics"
)

func TestNewBackend(t *testing.T) {
	if _, err := NewBackend("autos", "", ""); err == nil {
		t.Fatalf("NewBackend without URL should fail")
	}
	b, err := NewBackend("", "http://pushgateway:9091", "")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	if b.jobName != "autos" {
		t.Fatalf("jobName = %q; want default autos", b.jobName)
	}
}

/*
TestBackendRoutesMetrics checks each metric name lands in its collector and
unknown names are ignored.
*/
func TestBackendRoutesMetrics(t *testing.T) {
	b, err := NewBackend("autos", "http://example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	b.IncCounter(metrics.StageTotal, 1, metrics.Labels{"stage": "load", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 50000, metrics.Labels{"kind": metrics.RowsLoaded})
	b.IncCounter(metrics.RowsTotal, 14, metrics.Labels{"kind": metrics.RowsDroppedPrice})
	b.IncCounter("unknown_metric", 9, metrics.Labels{"kind": metrics.RowsLoaded})
	b.ObserveHistogram(metrics.StageDuration, 0.25, metrics.Labels{"stage": "load", "status": "success"})
	b.ObserveHistogram("other", 1, nil)
	b.SetGauge(metrics.GroupsGauge, 6, nil)

	if got := testutil.ToFloat64(b.stages.WithLabelValues("load", "success")); got != 1 {
		t.Fatalf("stage counter = %v; want 1", got)
	}
	if got := testutil.ToFloat64(b.rows.WithLabelValues(metrics.RowsLoaded)); got != 50000 {
		t.Fatalf("loaded rows = %v; want 50000", got)
	}
	if got := testutil.ToFloat64(b.groups); got != 6 {
		t.Fatalf("groups = %v; want 6", got)
	}
	if n := testutil.CollectAndCount(b.duration, metrics.StageDuration); n != 1 {
		t.Fatalf("duration series = %d; want 1", n)
	}

	want := `
# HELP autos_rows_total Listing rows by kind (loaded, dropped_price, dropped_year, retained).
# TYPE autos_rows_total counter
autos_rows_total{kind="dropped_price"} 14
autos_rows_total{kind="loaded"} 50000
`
	if err := testutil.CollectAndCompare(b.rows, strings.NewReader(want), metrics.RowsTotal); err != nil {
		t.Fatalf("rows mismatch: %v", err)
	}
}

func TestFlush(t *testing.T) {
	type req struct {
		method, path string
		bodyLen      int
	}
	reqCh := make(chan req, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- req{r.Method, r.URL.Path, len(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("autos", server.URL, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	b.IncCounter(metrics.StageTotal, 1, metrics.Labels{"stage": "load", "status": "success"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got req
	select {
	case got = <-reqCh:
	default:
		t.Fatalf("Flush() sent no request")
	}
	if got.method != http.MethodPut {
		t.Fatalf("method = %s; want PUT", got.method)
	}
	if !strings.Contains(got.path, "/job/autos") || !strings.Contains(got.path, "/run_id/run-1") {
		t.Fatalf("path = %s", got.path)
	}
	if got.bodyLen == 0 {
		t.Fatalf("empty push body")
	}
}

func TestFlushError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	b, err := NewBackend("autos", server.URL, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err == nil {
		t.Fatalf("Flush() against a failing gateway should error")
	}
}

func BenchmarkIncCounterRows(b *testing.B) {
	backend, err := NewBackend("autos", "http://example.com", "")
	if err != nil {
		b.Fatal(err)
	}
	labels := metrics.Labels{"kind": metrics.RowsLoaded}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.IncCounter(metrics.RowsTotal, 1, labels)
	}
}
