package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/labstack/echo/v4"
)

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindValidation:      http.StatusBadRequest,
	apperrors.KindUnauthenticated: http.StatusUnauthorized,
	apperrors.KindAccessDenied:    http.StatusForbidden,
	apperrors.KindNotFound:        http.StatusNotFound,
	apperrors.KindConflict:        http.StatusConflict,
	apperrors.KindRateLimited:     http.StatusTooManyRequests,
	apperrors.KindInternal:        http.StatusInternalServerError,
}

// HTTPErrorHandler renders every error as {"error": {kind, message}} so
// clients can branch on the kind instead of parsing message text
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			// Errors raised inside echo itself (routing, body limits).
			appErr = &apperrors.Error{Kind: kindForStatus(httpErr.Code), Message: http.StatusText(httpErr.Code)}
		} else {
			appErr = apperrors.Internal(err)
		}
	}

	status, ok := kindStatus[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if jsonErr := c.JSON(status, echo.Map{"error": echo.Map{
		"kind":    appErr.Kind,
		"message": appErr.Message,
	}}); jsonErr != nil {
		log.Printf("render error response: %v", jsonErr)
	}
}

func kindForStatus(status int) apperrors.Kind {
	switch status {
	case http.StatusBadRequest:
		return apperrors.KindValidation
	case http.StatusUnauthorized:
		return apperrors.KindUnauthenticated
	case http.StatusForbidden:
		return apperrors.KindAccessDenied
	case http.StatusNotFound:
		return apperrors.KindNotFound
	case http.StatusConflict:
		return apperrors.KindConflict
	case http.StatusTooManyRequests:
		return apperrors.KindRateLimited
	default:
		return apperrors.KindInternal
	}
}
