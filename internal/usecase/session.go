package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	domsvc "github.com/Shivam007kumar/customer-churn/internal/domain/service"
	"github.com/Shivam007kumar/customer-churn/internal/services/prediction"
	"github.com/Shivam007kumar/customer-churn/internal/services/profile"
)

// FormSession is the state behind one prediction form: the profile being
// edited, the last result and the error banner.
type FormSession struct {
	predictor domsvc.Predictor

	mu         sync.Mutex
	profile    profile.Profile
	result     *models.PredictionResult
	errMsg     string
	submitting bool
}

func NewFormSession(predictor domsvc.Predictor) *FormSession {
	return &FormSession{predictor: predictor, profile: profile.New()}
}

// Profile returns the current profile.
func (s *FormSession) Profile() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Edit applies one field edit. A rejected edit leaves the profile unchanged.
func (s *FormSession) Edit(field string, raw interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.profile.Set(field, raw)
	if err != nil {
		return err
	}
	s.profile = next
	return nil
}

// Submit normalizes the profile and requests a prediction. It is a no-op
// while another submission is in flight.
func (s *FormSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil
	}
	s.submitting = true
	s.result = nil
	s.errMsg = ""
	snapshot := s.profile
	s.mu.Unlock()

	var (
		res models.PredictionResult
		err error
	)
	payload, err := snapshot.Normalize()
	if err == nil {
		res, err = s.predictor.Submit(ctx, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	var ipe *profile.InvalidProfileError
	switch {
	case err == nil:
		s.result = &res
		return nil
	case errors.Is(err, prediction.ErrBusy):
		return nil
	case errors.As(err, &ipe):
		s.errMsg = ipe.Error()
	default:
		s.errMsg = prediction.UserMessage(err)
	}
	return err
}

// Result returns the last prediction, or nil.
func (s *FormSession) Result() *models.PredictionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// Error returns the error banner text, empty when there is none.
func (s *FormSession) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Busy reports whether a submission is in flight.
func (s *FormSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Dismiss clears the error banner and the last result, returning the form
// to its pre-submission view. The edited profile is kept.
func (s *FormSession) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	s.result = nil
}
