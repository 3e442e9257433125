package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFieldTableMatchesPayload(t *testing.T) {
	b, err := json.Marshal(Payload{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m) != len(Fields()) {
		t.Fatalf("payload has %d keys, field table has %d", len(m), len(Fields()))
	}
	for _, f := range Fields() {
		if _, ok := m[f.Name]; !ok {
			t.Fatalf("payload missing field %s", f.Name)
		}
	}
}

func TestFieldDefaultsAreValid(t *testing.T) {
	for _, f := range Fields() {
		switch f.Kind {
		case KindEnum:
			s, ok := f.Default.(string)
			if !ok {
				t.Fatalf("%s: default is %T", f.Name, f.Default)
			}
			if _, ok := f.Canonical(s); !ok {
				t.Fatalf("%s: default %q not an option", f.Name, s)
			}
		default:
			v, ok := f.Default.(float64)
			if !ok {
				t.Fatalf("%s: default is %T", f.Name, f.Default)
			}
			if !f.InRange(v) {
				t.Fatalf("%s: default %v out of [%v,%v]", f.Name, v, f.Min, f.Max)
			}
		}
	}
}

func TestCanonical(t *testing.T) {
	f, _ := LookupField("contract_type")
	if got, ok := f.Canonical("  one year "); !ok || got != "One Year" {
		t.Fatalf("unexpected canonical %q %v", got, ok)
	}
	if _, ok := f.Canonical("Three Year"); ok {
		t.Fatalf("expected unlisted option to be rejected")
	}
	if _, ok := LookupField("favourite_colour"); ok {
		t.Fatalf("unexpected lookup hit")
	}
}

func TestPredictionResultRisk(t *testing.T) {
	high := PredictionResult{Probability: 0.73, Prediction: 1}
	if high.Risk() != RiskHigh || high.Percent() != "73.0%" {
		t.Fatalf("unexpected %s %s", high.Risk(), high.Percent())
	}
	for _, p := range []float64{0, 2, -1, 0.5} {
		if got := (PredictionResult{Prediction: p}).Risk(); got != RiskLow {
			t.Fatalf("prediction %g: expected low risk, got %s", p, got)
		}
	}
}

func TestPredictionResultDecodesFloatClass(t *testing.T) {
	for _, body := range []string{
		`{"probability":0.81,"prediction":1}`,
		`{"probability":0.81,"prediction":1.0}`,
	} {
		var r PredictionResult
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			t.Fatalf("%s: decode: %v", body, err)
		}
		if !r.HighRisk() || r.Percent() != "81.0%" {
			t.Fatalf("%s: unexpected result %+v", body, r)
		}
	}
}

func TestRelayErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&RelayError{Kind: NetworkFailure, Err: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("expected unwrap to cause")
	}
	var re *RelayError
	if !errors.As(err, &re) || re.Kind.String() != OutcomeNetworkFailure {
		t.Fatalf("unexpected kind")
	}
}
