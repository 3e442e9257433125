package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordOutcome("relayed", 0.1)
	r.RecordOutcome("relayed", 0.2)
	r.RecordOutcome("network_failure", 1)
	r.RecordUpstreamStatus("200")
	r.RecordSinkError("kafka")

	if got := testutil.ToFloat64(r.outcomes.WithLabelValues("relayed")); got != 2 {
		t.Fatalf("expected 2 relayed, got %v", got)
	}
	if got := testutil.ToFloat64(r.outcomes.WithLabelValues("network_failure")); got != 1 {
		t.Fatalf("expected 1 network failure, got %v", got)
	}
	if got := testutil.ToFloat64(r.sinkErrors.WithLabelValues("kafka")); got != 1 {
		t.Fatalf("expected 1 sink error, got %v", got)
	}
}

func TestRecorderIsolatedRegistries(t *testing.T) {
	// two recorders on separate registries must not collide
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
