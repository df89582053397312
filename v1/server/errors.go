package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Aleph-Alpha/tagsearch/v1/ingest"
	"github.com/Aleph-Alpha/tagsearch/v1/pdf"
)

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// statusFor maps an error to its response status and message.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		if he.Internal != nil {
			return he.Code, fmt.Sprintf("%v: %v", he.Message, he.Internal)
		}
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, ingest.ErrIngestInProgress):
		return http.StatusConflict, err.Error()
	case errors.Is(err, pdf.ErrInvalidPDF), errors.Is(err, pdf.ErrTooLarge):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// handleError writes {"error": ...} and logs server-side failures in full.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := statusFor(err)
	ctx := c.Request().Context()
	fields := map[string]interface{}{
		"method": c.Request().Method,
		"route":  c.Path(),
		"status": status,
	}
	if status >= http.StatusInternalServerError {
		s.logger.ErrorWithContext(ctx, "request failed", err, fields)
	} else {
		s.logger.WarnWithContext(ctx, "request rejected", err, fields)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, ErrorResponse{Error: msg})
	}
	if err != nil {
		s.logger.ErrorWithContext(ctx, "failed to write error response", err, fields)
	}
}
