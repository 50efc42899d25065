package credentials

import (
	"auth-service/internal/config"
	"auth-service/internal/domain/user"
	"auth-service/internal/rbac"
)

// Records converts configured users into credential records, keeping order.
func Records(users []config.UserCredential) []user.CredentialRecord {
	records := make([]user.CredentialRecord, 0, len(users))
	for _, u := range users {
		records = append(records, user.CredentialRecord{
			Username:         u.Username,
			PasswordVerifier: u.Password,
			Role:             user.Role(u.Role),
		})
	}
	return records
}

// NewStaticSourceFromConfig builds the static source from the credentials
// section of the configuration.
func NewStaticSourceFromConfig(checker *rbac.Checker, cfg *config.CredentialsConfig) (*StaticSource, error) {
	return NewStaticSource(checker, Records(cfg.Users))
}
