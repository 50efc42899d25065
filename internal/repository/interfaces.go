package repository

import (
	"context"

	"auth-service/internal/domain/user"
)

// Repository interfaces used by the credential sources and tooling.
// These are provider-side interfaces that concrete implementations must satisfy

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// SchemaManager prepares and seeds the credential store
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
	SeedUsers(ctx context.Context, inputs []user.UpsertUserInput, overwrite bool) (SeedResult, error)
}

type SeedResult struct {
	Created []string
	Updated []string
	Skipped []string
}
