package prediction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	xhttp "github.com/Shivam007kumar/customer-churn/pkg/http"
	applogger "github.com/Shivam007kumar/customer-churn/pkg/logger"
)

// UnavailableMessage is the only failure text shown to users.
const UnavailableMessage = "Unable to connect to the prediction API."

const predictPath = "/api/predict"

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("prediction already in progress")
	// ErrRequestFailed wraps every transport, status or decoding failure.
	ErrRequestFailed = errors.New("prediction request failed")
)

// Option configures Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for failure details.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client submits payloads to the relay's predict endpoint, one at a time.
type Client struct {
	endpoint string
	http     *xhttp.Client
	logger   *applogger.Logger
	busy     atomic.Bool
}

// NewClient creates a client for the relay at baseURL (e.g. "http://localhost:5001").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(baseURL, "/") + predictPath,
		http:     xhttp.NewClient(xhttp.WithTimeout(30 * time.Second)),
		logger:   applogger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL payloads are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Busy reports whether a submission is in flight.
func (c *Client) Busy() bool { return c.busy.Load() }

// Submit posts p and decodes the prediction. A second call while one is in
// flight returns ErrBusy without contacting the relay.
func (c *Client) Submit(ctx context.Context, p models.Payload) (models.PredictionResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return models.PredictionResult{}, ErrBusy
	}
	defer c.busy.Store(false)

	var res models.PredictionResult
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.endpoint,
		Body:   p,
	}, &res)
	if err != nil {
		c.logger.Warn("prediction request failed",
			applogger.String("endpoint", c.endpoint),
			applogger.Error(err),
		)
		return models.PredictionResult{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	return res, nil
}

// UserMessage maps a Submit error to the text shown to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return UnavailableMessage
}
