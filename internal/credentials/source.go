// Package credentials resolves a username and password into a Principal.
// Exactly one Source is active per process.
package credentials

import (
	"context"

	"auth-service/internal/domain/user"
)

type Source interface {
	Resolve(ctx context.Context, username, password string) (user.Principal, error)
}

const (
	errDuplicateUsernameFmt = "credentials: duplicate username %q"
	errEmptyUsername        = "credentials: username must not be empty"
	errInvalidRoleFmt       = "credentials: user %q: %w"
	errLookupFailed         = "failed to look up credentials"
	errCorruptRecord        = "stored credential has an unknown role"
	dummyPasswordVerifier   = "dummy-password-verifier"
)
