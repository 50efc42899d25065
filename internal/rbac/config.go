package rbac

import "fmt"

// Config holds all RBAC configuration
type Config struct {
	Roles []RoleDefinition
}

// Validate checks internal consistency of the Config
func (c *Config) Validate() error {
	if len(c.Roles) == 0 {
		return fmt.Errorf(errConfigRolesEmpty)
	}

	roleNames := make(map[Role]bool, len(c.Roles))
	for _, rd := range c.Roles {
		if rd.Name == "" {
			return fmt.Errorf(errConfigRoleNameEmpty)
		}
		if roleNames[rd.Name] {
			return fmt.Errorf(errConfigDuplicateRoleNameFmt, rd.Name)
		}
		roleNames[rd.Name] = true
	}

	return nil
}
