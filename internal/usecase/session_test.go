package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	"github.com/Shivam007kumar/customer-churn/internal/services/prediction"
	"github.com/Shivam007kumar/customer-churn/internal/services/profile"
)

func TestSessionSubmitSuccess(t *testing.T) {
	p := &fakePredictor{res: models.PredictionResult{Probability: 0.73, Prediction: 1}}
	s := NewFormSession(p)
	if err := s.Edit("age", "61"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	res := s.Result()
	if res == nil || res.Risk() != models.RiskHigh || res.Percent() != "73.0%" {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.Error() != "" || s.Busy() {
		t.Fatalf("unexpected state error=%q busy=%v", s.Error(), s.Busy())
	}
}

func TestSessionDismissClearsResult(t *testing.T) {
	p := &fakePredictor{res: models.PredictionResult{Probability: 0.2, Prediction: 0}}
	s := NewFormSession(p)
	if err := s.Edit("age", "33"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Result() == nil {
		t.Fatalf("expected a result before dismiss")
	}
	s.Dismiss()
	if s.Result() != nil || s.Error() != "" {
		t.Fatalf("dismiss left state result=%+v error=%q", s.Result(), s.Error())
	}
	if v, _ := s.Profile().Get("age"); v != 33.0 {
		t.Fatalf("dismiss must keep the profile, age=%v", v)
	}
}

func TestSessionSubmitFailureShowsSingleMessage(t *testing.T) {
	p := &fakePredictor{err: fmt.Errorf("%w: status 500", prediction.ErrRequestFailed)}
	s := NewFormSession(p)
	if err := s.Submit(context.Background()); !errors.Is(err, prediction.ErrRequestFailed) {
		t.Fatalf("expected request failure, got %v", err)
	}
	if s.Error() != prediction.UnavailableMessage {
		t.Fatalf("unexpected message %q", s.Error())
	}
	if s.Result() != nil {
		t.Fatalf("result must be cleared")
	}
	s.Dismiss()
	if s.Error() != "" {
		t.Fatalf("dismiss did not clear error")
	}
}

func TestSessionSubmitInvalidProfile(t *testing.T) {
	p := &fakePredictor{}
	s := NewFormSession(p)
	if err := s.Edit("total_charges", ""); err != nil {
		t.Fatalf("edit: %v", err)
	}
	err := s.Submit(context.Background())
	var ipe *profile.InvalidProfileError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected invalid profile, got %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("invalid profile must not be submitted")
	}
	if s.Error() == "" {
		t.Fatalf("expected error banner")
	}
}

func TestSessionSubmitClearsPreviousResult(t *testing.T) {
	p := &fakePredictor{res: models.PredictionResult{Probability: 0.2}}
	s := NewFormSession(p)
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	p.err = errBoom
	_ = s.Submit(context.Background())
	if s.Result() != nil {
		t.Fatalf("stale result kept after failed submit")
	}
}

func TestSessionSubmitWhileBusyIsNoop(t *testing.T) {
	p := &fakePredictor{res: models.PredictionResult{Probability: 0.4}, block: make(chan struct{})}
	s := NewFormSession(p)

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for !s.Busy() {
		if time.Now().After(deadline) {
			t.Fatalf("session never became busy")
		}
		time.Sleep(time.Millisecond)
	}
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("busy submit should be a no-op, got %v", err)
	}
	close(p.block)
	if err := <-done; err != nil {
		t.Fatalf("submit: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("expected one call, got %d", p.calls)
	}
	if s.Result() == nil {
		t.Fatalf("expected result")
	}
}

func TestSessionEditRejected(t *testing.T) {
	s := NewFormSession(&fakePredictor{})
	if err := s.Edit("age", "old"); !errors.Is(err, profile.ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}
	if v, _ := s.Profile().Get("age"); v != 40.0 {
		t.Fatalf("profile changed on rejected edit: %v", v)
	}
}
