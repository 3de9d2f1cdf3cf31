package middleware

import (
	"log/slog"
	"net/http"

	domainerrors "portal/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware renders an error page for anything handlers did not
// map to a view state themselves.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// errorPage is the view model of the generic error template.
type errorPage struct {
	Title   string
	Code    int
	Message string
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := domainerrors.GenericMessage

	var httpErr *echo.HTTPError
	var apiErr *domainerrors.APIError
	var flowErr *domainerrors.FlowError

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	case errors.As(err, &apiErr):
		code = http.StatusBadGateway
		message = apiErr.Message()
	case errors.As(err, &flowErr):
		code = http.StatusBadRequest
		message = flowErr.Error()
	default:
		m.logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
			slog.String("method", c.Request().Method),
		)
	}

	renderErr := c.Render(code, "error.html", errorPage{
		Title:   "Something went wrong",
		Code:    code,
		Message: message,
	})
	if renderErr != nil {
		m.logger.Error("failed to render error page", slog.Any("error", renderErr))
		_ = c.NoContent(code)
	}
}
