package auth

import (
	"context"

	"auth-service/internal/domain/user"

	"github.com/labstack/echo/v4"
)

type principalContextKey struct{}

// WithPrincipal returns a new context carrying the principal.
func WithPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext returns the principal bound by the gate, if any.
func PrincipalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(user.Principal)
	return p, ok
}

// SetPrincipal binds p to both the echo context and the request context so
// handlers that only see context.Context can still read it.
func SetPrincipal(c echo.Context, p user.Principal) {
	c.Set(ContextKeyPrincipal, p)
	c.SetRequest(c.Request().WithContext(WithPrincipal(c.Request().Context(), p)))
}

func GetPrincipal(c echo.Context) (user.Principal, bool) {
	p, ok := c.Get(ContextKeyPrincipal).(user.Principal)
	return p, ok
}
