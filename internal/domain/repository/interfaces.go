package repository

import (
	"context"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
)

// UpstreamResponse is a successful (2xx) answer from the prediction service.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Upstream forwards a raw request body to the prediction service.
// Failures are returned as *models.RelayError.
type Upstream interface {
	Forward(ctx context.Context, body []byte) (*UpstreamResponse, error)
}

// OutcomeSink stores relay outcome events.
type OutcomeSink interface {
	Record(ctx context.Context, o models.RelayOutcome) error
	Name() string
	Close() error
}

type Metrics interface {
	RecordOutcome(outcome string, seconds float64)
	RecordUpstreamStatus(status string)
	RecordSinkError(backend string)
}
