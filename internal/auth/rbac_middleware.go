package auth

import (
	"fmt"
	"strings"

	"auth-service/internal/rbac"
	apperrors "auth-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

// RoleGuard builds authorization middleware. It must run after RequireJWT,
// but does not rely on that: a missing principal is reported as 401.
type RoleGuard struct {
	checker *rbac.Checker
}

func NewRoleGuard(checker *rbac.Checker) *RoleGuard {
	return &RoleGuard{checker: checker}
}

// RequireRole admits principals whose role is one of roles. Unknown roles
// panic at wiring time.
func (g *RoleGuard) RequireRole(roles ...rbac.Role) echo.MiddlewareFunc {
	if len(roles) == 0 {
		panic(msgGuardNeedsRole)
	}
	allowed := g.checker.MustRoles(roles...)
	denied := accessRestrictedMessage(allowed)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return apperrors.Unauthenticated()
			}

			if err := g.checker.RequireAnyRole(&principal, allowed...); err != nil {
				c.Logger().Debugf(msgRoleDeniedFmt, principal.Username, err)
				return apperrors.Forbidden(denied)
			}

			return next(c)
		}
	}
}

func accessRestrictedMessage(roles []rbac.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return fmt.Sprintf(msgAccessRestrictedFmt, strings.Join(names, msgRoleSeparator))
}
