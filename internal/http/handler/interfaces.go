package handler

import (
	"context"

	"auth-service/internal/audit"
	"auth-service/internal/auth"
	"auth-service/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// Consumer-side interfaces defined by handlers

type CredentialResolver interface {
	Resolve(ctx context.Context, username, password string) (user.Principal, error)
}

type TokenCodec interface {
	Issue(p user.Principal) (auth.IssuedToken, error)
	Verify(tokenString string) (*auth.Claims, error)
}

type AuditLogger interface {
	LogFromContext(c echo.Context, entry audit.Entry)
}
