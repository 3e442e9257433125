package repository

import (
	"context"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	drepo "github.com/Shivam007kumar/customer-churn/internal/domain/repository"
)

// NoopOutcomeSink discards outcome events.
type NoopOutcomeSink struct{}

func NewNoopOutcomeSink() drepo.OutcomeSink { return NoopOutcomeSink{} }

func (NoopOutcomeSink) Record(context.Context, models.RelayOutcome) error { return nil }
func (NoopOutcomeSink) Name() string                                       { return "none" }
func (NoopOutcomeSink) Close() error                                       { return nil }
