package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RawResponse writes body exactly as received, keeping status and content type.
func RawResponse(c echo.Context, statusCode int, contentType string, body []byte) error {
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(statusCode, contentType, body)
}

// ErrorResponse writes {"error": message}.
func ErrorResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorBody{Error: message})
}

// StatusResponse writes {"status": status} with 200.
func StatusResponse(c echo.Context, status string) error {
	return c.JSON(http.StatusOK, StatusBody{Status: status})
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusInternalServerError, "Internal Server Error")
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, appErr.Body())
	}
	return InternalServerErrorResponse(c)
}
