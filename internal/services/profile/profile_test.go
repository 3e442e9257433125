package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
)

func TestNewUsesDefaults(t *testing.T) {
	p := New()
	for _, f := range models.Fields() {
		v, ok := p.Get(f.Name)
		if !ok {
			t.Fatalf("missing %s", f.Name)
		}
		if v != f.Default {
			t.Fatalf("%s: expected default %v, got %v", f.Name, f.Default, v)
		}
	}
	if _, err := p.Normalize(); err != nil {
		t.Fatalf("defaults must normalize: %v", err)
	}
}

func TestSetDoesNotMutateReceiver(t *testing.T) {
	p := New()
	next, err := p.Set("age", "52")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := next.Get("age"); v != 52.0 {
		t.Fatalf("expected 52, got %v", v)
	}
	if v, _ := p.Get("age"); v != 40.0 {
		t.Fatalf("receiver mutated: %v", v)
	}
}

func TestSetNumericField(t *testing.T) {
	p := New()

	cleared, err := p.Set("monthly_charges", "  ")
	if err != nil {
		t.Fatalf("set blank: %v", err)
	}
	if v, _ := cleared.Get("monthly_charges"); v != "" {
		t.Fatalf("expected empty string, got %#v", v)
	}

	same, err := p.Set("monthly_charges", "abc")
	if !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}
	if v, _ := same.Get("monthly_charges"); v != 70.0 {
		t.Fatalf("expected unchanged value, got %v", v)
	}

	if _, err := p.Set("monthly_charges", math.NaN()); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected NaN to be rejected, got %v", err)
	}
	if _, err := p.Set("monthly_charges", "Inf"); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected Inf to be rejected, got %v", err)
	}

	// out of range is allowed while editing
	wide, err := p.Set("age", 200)
	if err != nil {
		t.Fatalf("set out of range: %v", err)
	}
	if v, _ := wide.Get("age"); v != 200.0 {
		t.Fatalf("expected unclamped 200, got %v", v)
	}
}

func TestSetCategoricalAndUnknown(t *testing.T) {
	p := New()
	next, err := p.Set("contract_type", "two year")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := next.Get("contract_type"); v != "two year" {
		t.Fatalf("expected verbatim value, got %v", v)
	}
	if _, err := p.Set("gender", 1); !errors.Is(err, ErrNotText) {
		t.Fatalf("expected ErrNotText, got %v", err)
	}
	if _, err := p.Set("shoe_size", "42"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	p := New()
	snap := p.Snapshot()
	snap["age"] = 99.0
	if v, _ := p.Get("age"); v != 40.0 {
		t.Fatalf("snapshot aliases profile")
	}
}
