package presets

import (
	"auth-service/internal/domain/user"
	"auth-service/internal/rbac"
)

const (
	RoleAdmin rbac.Role = user.RoleAdmin
	RoleUser  rbac.Role = user.RoleUser
)

// Default returns the role catalogue served by the API
func Default() rbac.Config {
	return rbac.Config{
		Roles: []rbac.RoleDefinition{
			{Name: RoleAdmin, Description: "operators; may reach admin resources"},
			{Name: RoleUser, Description: "regular callers; may reach user resources"},
		},
	}
}
