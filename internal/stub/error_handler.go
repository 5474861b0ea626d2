package stub

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// detailResponse is the FastAPI-style error envelope the real backend uses.
type detailResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler maps the stub's sentinel errors onto the status codes
// and detail strings the real backend emits, and renders everything in the
// {"detail": "<message>"} envelope the console expects.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, detailResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, errUserNotFound),
		errors.Is(err, errLineExists),
		errors.Is(err, errSegmentExists),
		errors.Is(err, errProductExists):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errWrongPassword):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errLineNotFound), errors.Is(err, errProductNotFound):
		return http.StatusNotFound, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
