package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shivam007kumar/customer-churn/internal/services/profile"
	"github.com/Shivam007kumar/customer-churn/internal/usecase"
	xhttp "github.com/Shivam007kumar/customer-churn/pkg/http"
	xlogger "github.com/Shivam007kumar/customer-churn/pkg/logger"
)

const (
	FailedPredictionMessage = "Failed to get prediction"
	InvalidProfileMessage   = "Invalid customer profile"
	BodyTooLargeMessage     = "Request body too large"
	RateLimitedMessage      = "Too many requests"
)

// Limiter decides whether a client key may make another request.
type Limiter interface {
	Allow(key string) bool
}

// PredictEchoHandler exposes the prediction relay over HTTP.
type PredictEchoHandler struct {
	logger       *xlogger.Logger
	relay        *usecase.Relay
	maxBodyBytes int64
	limiter      Limiter
}

// NewPredictEchoHandler creates the relay handler. maxBodyBytes <= 0 disables the body limit.
func NewPredictEchoHandler(logger *xlogger.Logger, relay *usecase.Relay, maxBodyBytes int64) *PredictEchoHandler {
	return &PredictEchoHandler{logger: logger, relay: relay, maxBodyBytes: maxBodyBytes}
}

// WithLimiter throttles /api/predict per client IP.
func (h *PredictEchoHandler) WithLimiter(l Limiter) *PredictEchoHandler {
	h.limiter = l
	return h
}

func (h *PredictEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	g := e.Group("/api")
	if h.limiter != nil {
		g.POST("/predict", h.Predict, h.rateLimit)
	} else {
		g.POST("/predict", h.Predict)
	}
}

func (h *PredictEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.limiter.Allow(c.RealIP()) {
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError(RateLimitedMessage))
		}
		return next(c)
	}
}

// Health reports liveness.
func (h *PredictEchoHandler) Health(c echo.Context) error {
	return xhttp.StatusResponse(c, "ok")
}

// Predict forwards the body to the prediction service and returns its answer
// untouched. Every upstream failure is reported to the caller the same way.
func (h *PredictEchoHandler) Predict(c echo.Context) error {
	body, err := h.readBody(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	resp, err := h.relay.Forward(c.Request().Context(), body, requestID)
	if err != nil {
		return xhttp.AppErrorResponse(c, h.mapError(err))
	}
	return xhttp.RawResponse(c, resp.StatusCode, resp.ContentType, resp.Body)
}

func (h *PredictEchoHandler) readBody(c echo.Context) ([]byte, error) {
	r := io.Reader(c.Request().Body)
	if h.maxBodyBytes > 0 {
		r = io.LimitReader(r, h.maxBodyBytes+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		h.logger.Warn("read request body", xlogger.Error(err))
		return nil, xhttp.BadRequestError("Invalid request body").WithError(err)
	}
	if h.maxBodyBytes > 0 && int64(len(body)) > h.maxBodyBytes {
		return nil, xhttp.PayloadTooLargeError(BodyTooLargeMessage)
	}
	return body, nil
}

func (h *PredictEchoHandler) mapError(err error) *xhttp.AppError {
	var ipe *profile.InvalidProfileError
	switch {
	case errors.As(err, &ipe):
		return xhttp.BadRequestError(InvalidProfileMessage).WithDetails(gapDetails(ipe.Gaps)).WithError(err)
	case errors.Is(err, usecase.ErrInvalidBody):
		return xhttp.BadRequestError(InvalidProfileMessage).WithError(err)
	default:
		return xhttp.NewAppError("ERR_PREDICTION_FAILED", FailedPredictionMessage, http.StatusInternalServerError).WithError(err)
	}
}

func gapDetails(gaps []profile.ValidationGap) []xhttp.ValidationError {
	out := make([]xhttp.ValidationError, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, xhttp.ValidationError{
			Code:    g.Code,
			Field:   g.Field,
			Message: g.Message,
			Params:  g.Params,
		})
	}
	return out
}
