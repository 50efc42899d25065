package rbac

import "errors"

var (
	ErrDenied      = errors.New("authorization denied")
	ErrNilSubject  = errors.New("subject is nil")
	ErrInvalidRole = errors.New("invalid role")
)

const (
	errConfigRolesEmpty           = "rbac config: roles must not be empty"
	errConfigRoleNameEmpty        = "rbac config: role name must not be empty"
	errConfigDuplicateRoleNameFmt = "rbac config: duplicate role name: %s"
	errMustNewPanicFmt            = "rbac.MustNew: %v"
	errRequireRoleUnknownFmt      = "rbac: required role %q is not configured"
	errDeniedRoleEmpty            = "role is empty"
	errDeniedRoleNotAllowedFmt    = "role '%s' is not one of %v"
)
