package upstream

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	drepo "github.com/Shivam007kumar/customer-churn/internal/domain/repository"
	xhttp "github.com/Shivam007kumar/customer-churn/pkg/http"
)

// Client forwards raw prediction requests to the hosted model.
type Client struct {
	url  string
	http *xhttp.Client
}

// New creates an upstream forwarder. timeout bounds each call end to end.
func New(upstreamURL string, timeout time.Duration, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &Client{
		url:  upstreamURL,
		http: xhttp.NewClient(opts...),
	}
}

// URL returns the upstream endpoint.
func (c *Client) URL() string { return c.url }

// Forward posts body unmodified. Non-2xx answers, transport failures and
// timeouts come back as *models.RelayError.
func (c *Client) Forward(ctx context.Context, body []byte) (*drepo.UpstreamResponse, error) {
	resp, err := c.http.Send(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.url,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		return nil, classify(err)
	}
	return &drepo.UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.ContentType,
		Body:        resp.Body,
	}, nil
}

func classify(err error) *models.RelayError {
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return &models.RelayError{Kind: models.UpstreamFailure, Status: se.StatusCode, Err: err}
	}

	var (
		ue       *url.Error
		ne       net.Error
		tooLarge *xhttp.ResponseTooLargeError
	)
	switch {
	case errors.As(err, &tooLarge):
		return &models.RelayError{Kind: models.UnknownFailure, Err: err}
	case errors.As(err, &ue) && ue.Op == "parse":
		return &models.RelayError{Kind: models.UnknownFailure, Err: err}
	case errors.As(err, &ue), errors.As(err, &ne),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled),
		errors.Is(err, io.ErrUnexpectedEOF):
		return &models.RelayError{Kind: models.NetworkFailure, Err: err}
	default:
		return &models.RelayError{Kind: models.UnknownFailure, Err: err}
	}
}

var _ drepo.Upstream = (*Client)(nil)
