package rbac

import (
	"fmt"

	"auth-service/internal/domain/user"
)

// Checker answers role questions against a validated Config
type Checker struct {
	config     Config
	validRoles map[Role]bool
}

// New creates a Checker from a validated Config
func New(cfg Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := &Checker{config: cfg}
	rc.buildLookups()
	return rc, nil
}

// MustNew creates a Checker and panics on invalid config
func MustNew(cfg Config) *Checker {
	rc, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf(errMustNewPanicFmt, err))
	}
	return rc
}

func (rc *Checker) buildLookups() {
	rc.validRoles = make(map[Role]bool, len(rc.config.Roles))
	for _, rd := range rc.config.Roles {
		rc.validRoles[rd.Name] = true
	}
}

// Roles lists the configured roles in declaration order
func (rc *Checker) Roles() []Role {
	roles := make([]Role, 0, len(rc.config.Roles))
	for _, rd := range rc.config.Roles {
		roles = append(roles, rd.Name)
	}
	return roles
}

// IsValidRole reports whether role is configured
func (rc *Checker) IsValidRole(role Role) bool {
	return rc.validRoles[role]
}

// ValidateRole validates a role string against configured roles
func (rc *Checker) ValidateRole(role string) (Role, error) {
	r := Role(role)
	if rc.validRoles[r] {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
}

// MustRoles panics if any of roles is not configured. Guards call it at
// construction so a typo in route wiring fails at startup.
func (rc *Checker) MustRoles(roles ...Role) []Role {
	for _, r := range roles {
		if !rc.validRoles[r] {
			panic(fmt.Sprintf(errRequireRoleUnknownFmt, r))
		}
	}
	return roles
}

// RequireAnyRole checks that the subject holds one of the allowed roles.
// Matching is exact; there is no role hierarchy.
func (rc *Checker) RequireAnyRole(subject *user.Principal, allowed ...Role) error {
	if subject == nil {
		return fmt.Errorf("%w: %w", ErrDenied, ErrNilSubject)
	}
	if subject.Role == "" {
		return fmt.Errorf("%w: %s", ErrDenied, errDeniedRoleEmpty)
	}
	if !rc.validRoles[subject.Role] {
		return fmt.Errorf("%w: %w: %q", ErrDenied, ErrInvalidRole, subject.Role)
	}
	for _, r := range allowed {
		if subject.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: "+errDeniedRoleNotAllowedFmt, ErrDenied, subject.Role, allowed)
}
