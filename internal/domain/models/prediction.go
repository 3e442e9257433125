package models

import (
	"fmt"
	"time"
)

const (
	RiskHigh = "High Churn Risk"
	RiskLow  = "Low Churn Risk"
)

// PredictionResult is the upstream answer, decoded without validation.
// Prediction is a float so that class labels serialized as 1.0 still decode.
type PredictionResult struct {
	Probability float64 `json:"probability"`
	Prediction  float64 `json:"prediction"`
}

// HighRisk reports whether the upstream classified the customer as churning.
func (r PredictionResult) HighRisk() bool { return r.Prediction == 1 }

// Risk returns the display label for the predicted class.
func (r PredictionResult) Risk() string {
	if r.HighRisk() {
		return RiskHigh
	}
	return RiskLow
}

// Percent renders the probability as a one-decimal percentage, e.g. "73.0%".
func (r PredictionResult) Percent() string {
	return fmt.Sprintf("%.1f%%", r.Probability*100)
}

// Outcome labels used in metrics and relay events.
const (
	OutcomeRelayed         = "relayed"
	OutcomeNetworkFailure  = "network_failure"
	OutcomeUpstreamFailure = "upstream_failure"
	OutcomeUnknown         = "unknown"
	OutcomeRejected        = "rejected"
)

// RelayOutcome records one relay call. It never carries the customer payload.
type RelayOutcome struct {
	ID             string    `json:"id"`
	RequestID      string    `json:"request_id,omitempty"`
	Outcome        string    `json:"outcome"`
	UpstreamStatus int       `json:"upstream_status,omitempty"`
	DurationMs     int64     `json:"duration_ms"`
	OccurredAt     time.Time `json:"occurred_at"`
}
