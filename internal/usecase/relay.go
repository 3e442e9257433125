package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	drepo "github.com/Shivam007kumar/customer-churn/internal/domain/repository"
	"github.com/Shivam007kumar/customer-churn/internal/services/profile"
	applogger "github.com/Shivam007kumar/customer-churn/pkg/logger"
)

// ErrInvalidBody is returned in strict mode when the body is not a JSON object.
var ErrInvalidBody = errors.New("request body is not a JSON object")

// RelayOptions tunes Relay behaviour.
type RelayOptions struct {
	// StrictValidation normalizes the body before forwarding and rejects invalid profiles.
	StrictValidation bool
	// SinkTimeout bounds a single outcome write.
	SinkTimeout time.Duration
}

// Relay forwards prediction requests to the upstream model and records the outcome.
// It holds no per-call state.
type Relay struct {
	upstream drepo.Upstream
	sink     drepo.OutcomeSink
	metrics  drepo.Metrics
	logger   *applogger.Logger
	opts     RelayOptions
	now      func() time.Time
}

func NewRelay(upstream drepo.Upstream, sink drepo.OutcomeSink, metrics drepo.Metrics, l *applogger.Logger, opts RelayOptions) *Relay {
	if opts.SinkTimeout <= 0 {
		opts.SinkTimeout = 2 * time.Second
	}
	if l == nil {
		l = applogger.NewNop()
	}
	return &Relay{upstream: upstream, sink: sink, metrics: metrics, logger: l, opts: opts, now: time.Now}
}

// Strict reports whether bodies are validated before forwarding.
func (r *Relay) Strict() bool { return r.opts.StrictValidation }

// Forward sends body to the upstream unchanged. On success the upstream
// response is returned as is; failures are *models.RelayError, or in strict
// mode ErrInvalidBody / *profile.InvalidProfileError before any call is made.
func (r *Relay) Forward(ctx context.Context, body []byte, requestID string) (*drepo.UpstreamResponse, error) {
	if r.opts.StrictValidation {
		if err := checkProfile(body); err != nil {
			r.metrics.RecordOutcome(models.OutcomeRejected, 0)
			r.record(ctx, models.RelayOutcome{RequestID: requestID, Outcome: models.OutcomeRejected})
			r.logger.Warn("profile rejected",
				applogger.String("request_id", requestID),
				applogger.Error(err),
			)
			return nil, err
		}
	}

	start := r.now()
	resp, err := r.upstream.Forward(ctx, body)
	elapsed := r.now().Sub(start)

	ev := models.RelayOutcome{RequestID: requestID, DurationMs: elapsed.Milliseconds()}
	if err != nil {
		var re *models.RelayError
		if !errors.As(err, &re) {
			re = &models.RelayError{Kind: models.UnknownFailure, Err: err}
		}
		ev.Outcome = re.Kind.String()
		ev.UpstreamStatus = re.Status
		r.observe(ev, elapsed)
		r.record(ctx, ev)
		r.logger.Error("prediction relay failed",
			applogger.String("request_id", requestID),
			applogger.String("outcome", ev.Outcome),
			applogger.Int("upstream_status", re.Status),
			applogger.Duration("duration", elapsed),
			applogger.Error(re.Err),
		)
		return nil, re
	}

	ev.Outcome = models.OutcomeRelayed
	ev.UpstreamStatus = resp.StatusCode
	r.observe(ev, elapsed)
	r.record(ctx, ev)
	r.logger.Info("prediction relayed",
		applogger.String("request_id", requestID),
		applogger.Int("upstream_status", resp.StatusCode),
		applogger.Duration("duration", elapsed),
	)
	return resp, nil
}

func (r *Relay) observe(ev models.RelayOutcome, elapsed time.Duration) {
	r.metrics.RecordOutcome(ev.Outcome, elapsed.Seconds())
	if ev.UpstreamStatus != 0 {
		r.metrics.RecordUpstreamStatus(strconv.Itoa(ev.UpstreamStatus))
	}
}

// record writes the outcome event. Failures are logged only; the caller's
// response never depends on the sink.
func (r *Relay) record(ctx context.Context, ev models.RelayOutcome) {
	if r.sink == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.OccurredAt = r.now().UTC()

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opts.SinkTimeout)
	defer cancel()
	if err := r.sink.Record(sctx, ev); err != nil {
		r.metrics.RecordSinkError(r.sink.Name())
		r.logger.Warn("record relay outcome",
			applogger.String("backend", r.sink.Name()),
			applogger.String("outcome", ev.Outcome),
			applogger.Error(err),
		)
	}
}

func checkProfile(body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var values map[string]interface{}
	if err := dec.Decode(&values); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if values == nil {
		return ErrInvalidBody
	}
	if _, err := profile.Normalize(values); err != nil {
		return err
	}
	return nil
}
