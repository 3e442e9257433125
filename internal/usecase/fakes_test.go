package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	drepo "github.com/Shivam007kumar/customer-churn/internal/domain/repository"
)

type fakeUpstream struct {
	mu    sync.Mutex
	calls [][]byte
	resp  *drepo.UpstreamResponse
	err   error
}

func (f *fakeUpstream) Forward(_ context.Context, body []byte) (*drepo.UpstreamResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, body)
	return f.resp, f.err
}

type fakeSink struct {
	mu     sync.Mutex
	events []models.RelayOutcome
	err    error
}

func (f *fakeSink) Record(_ context.Context, o models.RelayOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, o)
	return f.err
}

func (f *fakeSink) Name() string { return "fake" }
func (f *fakeSink) Close() error { return nil }

type fakeMetrics struct {
	mu         sync.Mutex
	outcomes   map[string]int
	statuses   map[string]int
	sinkErrors int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{outcomes: map[string]int{}, statuses: map[string]int{}}
}

func (f *fakeMetrics) RecordOutcome(outcome string, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes[outcome]++
}

func (f *fakeMetrics) RecordUpstreamStatus(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[status]++
}

func (f *fakeMetrics) RecordSinkError(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinkErrors++
}

type fakePredictor struct {
	res   models.PredictionResult
	err   error
	calls int
	block chan struct{}
}

func (f *fakePredictor) Submit(ctx context.Context, _ models.Payload) (models.PredictionResult, error) {
	f.calls++
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return models.PredictionResult{}, ctx.Err()
		}
	}
	return f.res, f.err
}

var errBoom = errors.New("boom")
