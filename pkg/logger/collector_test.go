package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return nil
}

func TestCollectorDeduplicatesAndFlushesOnClose(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Topic: "relay-logs", Publisher: pub})

	fields := map[string]interface{}{"kind": "network_failure"}
	c.AddLog("error", "upstream call failed", fields, "relay.go:10")
	c.AddLog("error", "upstream call failed", fields, "relay.go:10")
	c.AddLog("error", "upstream call failed", map[string]interface{}{"kind": "upstream_failure"}, "relay.go:10")

	if got := c.Pending(); got != 2 {
		t.Fatalf("expected 2 unique entries, got %d", got)
	}

	c.Close()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if pub.topic != "relay-logs" {
		t.Fatalf("unexpected topic %q", pub.topic)
	}
	if len(pub.batches) != 1 || len(pub.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2 entries, got %+v", pub.batches)
	}
	total := 0
	for _, e := range pub.batches[0] {
		total += e.Count
	}
	if total != 3 {
		t.Fatalf("expected total count 3, got %d", total)
	}
}

func TestLoggerErrorFeedsCollector(t *testing.T) {
	pub := &capturePublisher{}
	l := NewNop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 100, Topic: "t", Publisher: pub})

	l.Info("not collected")
	l.Error("collected", Error(errors.New("boom")))

	if got := l.collector.Pending(); got != 1 {
		t.Fatalf("expected 1 pending entry, got %d", got)
	}
	l.RemoveCollector()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.batches) != 1 || pub.batches[0][0].Fields["error"] != "boom" {
		t.Fatalf("unexpected batches %+v", pub.batches)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&Config{Level: "loud", Output: "stdout"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}
