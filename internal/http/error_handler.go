package http

import (
	"errors"
	"fmt"
	"net/http"

	"auth-service/internal/http/middleware"
	apperrors "auth-service/pkg/errors"
	"auth-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const (
	jsonKeyError     = "error"
	unknownRequestID = "unknown"
)

// CustomHTTPErrorHandler is the single place errors become responses. It
// maps the error taxonomy to a status and {"error": message} body, hides
// server-side detail from clients and logs every error with its request ID.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := apperrors.StatusCode(err)
	message := apperrors.PublicMessage(err)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
		if code >= http.StatusInternalServerError {
			message = apperrors.PublicMessage(apperrors.ErrInternalServer)
		}
	}

	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		requestID = unknownRequestID
	}

	fields := log.JSON{
		"request_id": requestID,
		"method":     c.Request().Method,
		"path":       c.Request().URL.Path,
		"status":     code,
		"error":      logger.SanitizeLogMessage(err.Error()),
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Errorj(fields)
	} else {
		c.Logger().Warnj(fields)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{jsonKeyError: message})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
