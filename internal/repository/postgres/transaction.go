package postgres

import (
	"context"

	"auth-service/internal/domain/user"
	"auth-service/internal/repository"
)

const (
	createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	insertUserIfAbsent = `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`

	updateUserCredential = `
		UPDATE users SET password_hash = $2, role = $3, updated_at = NOW()
		WHERE username = $1
	`
)

var _ repository.SchemaManager = (*DB)(nil)

func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, createUsersTable); err != nil {
		return errFailedCreateSchema(err)
	}
	return nil
}

// SeedUsers inserts every input inside one transaction. Existing usernames are
// updated when overwrite is set and skipped otherwise.
func (db *DB) SeedUsers(ctx context.Context, inputs []user.UpsertUserInput, overwrite bool) (repository.SeedResult, error) {
	var result repository.SeedResult

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return result, errFailedStartTransaction(err)
	}
	defer tx.Rollback(ctx)

	for _, input := range inputs {
		if overwrite {
			tag, err := tx.Exec(ctx, updateUserCredential, input.Username, input.PasswordHash, input.Role)
			if err != nil {
				return result, errFailedSeedUser(input.Username, err)
			}
			if tag.RowsAffected() > 0 {
				result.Updated = append(result.Updated, input.Username)
				continue
			}
		}

		tag, err := tx.Exec(ctx, insertUserIfAbsent, input.Username, input.PasswordHash, input.Role)
		if err != nil {
			return result, errFailedSeedUser(input.Username, err)
		}
		if tag.RowsAffected() == 0 {
			result.Skipped = append(result.Skipped, input.Username)
			continue
		}
		result.Created = append(result.Created, input.Username)
	}

	if err := tx.Commit(ctx); err != nil {
		return repository.SeedResult{}, errFailedCommitTransaction(err)
	}

	return result, nil
}
