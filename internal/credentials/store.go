package credentials

import (
	"context"
	"errors"

	"auth-service/internal/domain/user"
	"auth-service/internal/rbac"
	apperrors "auth-service/pkg/errors"
	"auth-service/pkg/password"
)

type UserGetter interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// StoreSource resolves credentials against hashed records in the user store.
type StoreSource struct {
	users   UserGetter
	checker *rbac.Checker
	verify  func(password, hash string) bool
}

func NewStoreSource(users UserGetter, checker *rbac.Checker) *StoreSource {
	return &StoreSource{
		users:   users,
		checker: checker,
		verify:  password.Verify,
	}
}

func (s *StoreSource) Resolve(ctx context.Context, username, pw string) (user.Principal, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same cost as a real mismatch.
			s.verify(pw, password.DummyHash)
			return user.Principal{}, apperrors.InvalidCredentials()
		}
		return user.Principal{}, apperrors.InternalServer(errLookupFailed, err)
	}

	if !s.verify(pw, u.PasswordHash) {
		return user.Principal{}, apperrors.InvalidCredentials()
	}

	if !s.checker.IsValidRole(u.Role) {
		return user.Principal{}, apperrors.InternalServer(errCorruptRecord, rbac.ErrInvalidRole)
	}

	return u.Credential().Principal(), nil
}
