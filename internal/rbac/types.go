package rbac

import "auth-service/internal/domain/user"

// Role represents a principal's role. Roles are flat: a principal holds exactly one.
type Role = user.Role

// RoleDefinition defines a role known to the system
type RoleDefinition struct {
	Name        Role
	Description string
}
