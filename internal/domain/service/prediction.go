package service

import (
	"context"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
)

// Predictor submits a normalized profile and returns the churn prediction.
type Predictor interface {
	Submit(ctx context.Context, p models.Payload) (models.PredictionResult, error)
}
