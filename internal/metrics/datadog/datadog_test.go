package datadog

import (
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"autos/internal/metrics"
)

func TestTags(t *testing.T) {
	got := tags(metrics.Labels{"stage": "load", "job": "autos"})
	if want := []string{"job:autos", "stage:load"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("tags() = %v; want %v", got, want)
	}
	if tags(nil) != nil {
		t.Fatalf("tags(nil) should be nil")
	}
}

/*
TestBackendSendsToAgent runs a UDP listener standing in for the agent and
checks that a counter arrives with its namespace and tags after Flush.
*/
func TestBackendSendsToAgent(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("udp listen: %v", err)
	}
	defer conn.Close()

	b, err := NewBackend(Config{Addr: conn.LocalAddr().String(), Namespace: "test.", GlobalTags: []string{"env:ci"}})
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter(metrics.RowsTotal, 42, metrics.Labels{"kind": metrics.RowsRetained})
	b.SetGauge(metrics.GroupsGauge, 6, nil)
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got strings.Builder
	buf := make([]byte, 8192)
	for !strings.Contains(got.String(), "test.autos_groups:6|g") || !strings.Contains(got.String(), "test.autos_rows_total:42|c") {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			t.Fatalf("read: %v (got %q)", err, got.String())
		}
		got.Write(buf[:n])
		got.WriteByte('\n')
	}
	if !strings.Contains(got.String(), "kind:retained") || !strings.Contains(got.String(), "env:ci") {
		t.Fatalf("payload = %q", got.String())
	}
}
