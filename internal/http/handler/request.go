package handler

import (
	"encoding/json"
	"io"
	"strings"

	apperrors "auth-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON          = "application/json"
	maxStrictBodyBytes int64 = 1 << 20 // Keep parser bound aligned with global body limit.
)

// bindJSON decodes a single JSON object into dst. Any failure, including a
// non-JSON content type, is reported as a shape error carrying shapeMsg.
// Unknown fields are ignored.
func bindJSON(c echo.Context, dst any, shapeMsg string) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return apperrors.InvalidRequestShape(shapeMsg)
	}

	decoder := json.NewDecoder(io.LimitReader(c.Request().Body, maxStrictBodyBytes))

	if err := decoder.Decode(dst); err != nil {
		return apperrors.InvalidRequestShape(shapeMsg)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.InvalidRequestShape(shapeMsg)
	}

	return nil
}

// LoginRequest uses pointers so absent and null fields are told apart from
// empty strings. A non-string value fails decoding.
type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type VerifyRequest struct {
	Token *string `json:"token"`
}
