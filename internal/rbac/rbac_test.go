package rbac_test

import (
	"errors"
	"testing"

	"auth-service/internal/domain/user"
	"auth-service/internal/rbac"
	"auth-service/internal/rbac/presets"
)

func newChecker(t *testing.T) *rbac.Checker {
	t.Helper()
	rc, err := rbac.New(presets.Default())
	if err != nil {
		t.Fatalf("failed to create checker: %v", err)
	}
	return rc
}

func TestValidateRole(t *testing.T) {
	checker := newChecker(t)

	tests := []struct {
		name      string
		role      string
		expected  rbac.Role
		shouldErr bool
	}{
		{"Valid admin", "admin", presets.RoleAdmin, false},
		{"Valid user", "user", presets.RoleUser, false},
		{"Invalid role", "superuser", "", true},
		{"Wrong case", "Admin", "", true},
		{"Empty role", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := checker.ValidateRole(tt.role)
			if tt.shouldErr {
				if !errors.Is(err, rbac.ErrInvalidRole) {
					t.Errorf("ValidateRole(%s) error should wrap ErrInvalidRole, got: %v", tt.role, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateRole(%s) unexpected error: %v", tt.role, err)
			}
			if result != tt.expected {
				t.Errorf("ValidateRole(%s) = %s, expected %s", tt.role, result, tt.expected)
			}
		})
	}
}

func TestRequireAnyRole(t *testing.T) {
	checker := newChecker(t)

	admin := &user.Principal{Username: "root", Role: presets.RoleAdmin}
	regular := &user.Principal{Username: "alice", Role: presets.RoleUser}
	unknown := &user.Principal{Username: "mallory", Role: "superuser"}

	tests := []struct {
		name    string
		subject *user.Principal
		allowed []rbac.Role
		allow   bool
	}{
		{"Admin on admin", admin, []rbac.Role{presets.RoleAdmin}, true},
		{"User on user", regular, []rbac.Role{presets.RoleUser}, true},
		{"Admin on user", admin, []rbac.Role{presets.RoleUser}, false},
		{"User on admin", regular, []rbac.Role{presets.RoleAdmin}, false},
		{"User on either", regular, []rbac.Role{presets.RoleAdmin, presets.RoleUser}, true},
		{"Admin on either", admin, []rbac.Role{presets.RoleAdmin, presets.RoleUser}, true},
		{"Unknown role", unknown, []rbac.Role{presets.RoleAdmin, presets.RoleUser}, false},
		{"Empty allow list", admin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.RequireAnyRole(tt.subject, tt.allowed...)
			if tt.allow && err != nil {
				t.Errorf("expected allow, got %v", err)
			}
			if !tt.allow && !errors.Is(err, rbac.ErrDenied) {
				t.Errorf("expected ErrDenied, got %v", err)
			}
		})
	}
}

func TestRequireAnyRoleNilSubject(t *testing.T) {
	checker := newChecker(t)

	err := checker.RequireAnyRole(nil, presets.RoleAdmin)
	if !errors.Is(err, rbac.ErrNilSubject) {
		t.Errorf("expected ErrNilSubject, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  rbac.Config
	}{
		{"No roles", rbac.Config{}},
		{"Empty name", rbac.Config{Roles: []rbac.RoleDefinition{{Name: ""}}}},
		{"Duplicate", rbac.Config{Roles: []rbac.RoleDefinition{{Name: "admin"}, {Name: "admin"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rbac.New(tt.cfg); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestMustRolesPanicsOnUnknownRole(t *testing.T) {
	checker := newChecker(t)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown role")
		}
	}()
	checker.MustRoles(presets.RoleAdmin, "auditor")
}

func TestRolesKeepsDeclarationOrder(t *testing.T) {
	roles := newChecker(t).Roles()
	if len(roles) != 2 || roles[0] != presets.RoleAdmin || roles[1] != presets.RoleUser {
		t.Errorf("unexpected roles: %v", roles)
	}
}
