package ratelimit

import (
	"testing"
	"time"
)

func TestAllowBurstAndRefill(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := New(2, 1)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("burst of 2 must be allowed")
	}
	if l.Allow("a") {
		t.Fatalf("third request must be limited")
	}
	if !l.Allow("b") {
		t.Fatalf("keys must be independent")
	}

	now = now.Add(time.Second)
	if !l.Allow("a") {
		t.Fatalf("token must refill after 1s")
	}
	if l.Allow("a") {
		t.Fatalf("only one token refilled")
	}
}

func TestIdleBucketsAreSwept(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := New(1, 1)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	if l.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", l.Len())
	}
	now = now.Add(11 * time.Minute)
	l.Allow("c")
	if l.Len() != 1 {
		t.Fatalf("expected idle keys to be dropped, got %d", l.Len())
	}
}
