package auth

import (
	"strings"

	apperrors "auth-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// Middleware is the authentication gate for protected routes.
type Middleware struct {
	verifier TokenVerifier
}

func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

func (m *Middleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := extractBearerToken(c)
			if !ok {
				return apperrors.MissingOrMalformedHeader()
			}

			claims, err := m.verifier.Verify(token)
			if err != nil {
				c.Logger().Warnf(msgTokenRejectedFmt, err)
				return apperrors.InvalidOrExpiredToken(err)
			}

			SetPrincipal(c, claims.Principal())

			return next(c)
		}
	}
}

// extractBearerToken accepts "Bearer <token>" with a case-insensitive scheme.
func extractBearerToken(c echo.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.Request().Header.Get(headerAuthorization))
	if authHeader == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}
