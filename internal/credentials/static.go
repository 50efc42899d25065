package credentials

import (
	"context"
	"fmt"

	"auth-service/internal/auth"
	"auth-service/internal/domain/user"
	"auth-service/internal/rbac"
	apperrors "auth-service/pkg/errors"
)

// StaticSource holds plaintext records loaded from configuration. It is
// immutable after construction.
type StaticSource struct {
	records map[string]user.CredentialRecord
}

// NewStaticSource indexes records by username. Records are validated against
// the role catalogue; a username may appear only once.
func NewStaticSource(checker *rbac.Checker, records []user.CredentialRecord) (*StaticSource, error) {
	index := make(map[string]user.CredentialRecord, len(records))
	for _, r := range records {
		if r.Username == "" {
			return nil, fmt.Errorf(errEmptyUsername)
		}
		if _, exists := index[r.Username]; exists {
			return nil, fmt.Errorf(errDuplicateUsernameFmt, r.Username)
		}
		if _, err := checker.ValidateRole(string(r.Role)); err != nil {
			return nil, fmt.Errorf(errInvalidRoleFmt, r.Username, err)
		}
		index[r.Username] = r
	}
	return &StaticSource{records: index}, nil
}

func (s *StaticSource) Resolve(_ context.Context, username, password string) (user.Principal, error) {
	record, ok := s.records[username]
	if !ok {
		auth.ConstantTimeEqual(password, dummyPasswordVerifier)
		return user.Principal{}, apperrors.InvalidCredentials()
	}

	if !auth.ConstantTimeEqual(password, record.PasswordVerifier) {
		return user.Principal{}, apperrors.InvalidCredentials()
	}

	return record.Principal(), nil
}

func (s *StaticSource) Len() int {
	return len(s.records)
}
