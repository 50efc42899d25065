package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"auth-service/internal/config"
	"auth-service/internal/domain/user"
	"auth-service/internal/rbac"
	"auth-service/internal/rbac/presets"
	"auth-service/internal/repository"
	apperrors "auth-service/pkg/errors"
	"auth-service/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashCredentials(t *testing.T) {
	checker := rbac.MustNew(presets.Default())

	inputs, err := hashCredentials(checker, []config.UserCredential{
		{Username: "admin", Password: "admin-secret", Role: "admin"},
		{Username: "user", Password: "user-secret", Role: "user"},
	}, password.MinCost)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "admin", inputs[0].Username)
	assert.Equal(t, user.RoleAdmin, inputs[0].Role)
	assert.True(t, password.Verify("admin-secret", inputs[0].PasswordHash))
	assert.NotEqual(t, "admin-secret", inputs[0].PasswordHash)
	assert.Equal(t, user.RoleUser, inputs[1].Role)
}

func TestHashCredentialsRejectsUnknownRole(t *testing.T) {
	checker := rbac.MustNew(presets.Default())

	_, err := hashCredentials(checker, []config.UserCredential{
		{Username: "root", Password: "long-enough", Role: "superuser"},
	}, password.MinCost)
	assert.ErrorIs(t, err, rbac.ErrInvalidRole)
}

func TestHashCredentialsValidatesInput(t *testing.T) {
	checker := rbac.MustNew(presets.Default())

	_, err := hashCredentials(checker, []config.UserCredential{
		{Username: "admin", Password: "short", Role: "admin"},
	}, password.MinCost)
	assert.ErrorContains(t, err, "at least 8")

	_, err = hashCredentials(checker, []config.UserCredential{
		{Username: "bad name", Password: "long-enough", Role: "admin"},
	}, password.MinCost)
	assert.ErrorContains(t, err, "whitespace")
}

type fakeStore struct {
	schemaErr error
	existing  map[string]bool
	schemaOK  bool
}

func (f *fakeStore) EnsureSchema(context.Context) error {
	if f.schemaErr != nil {
		return f.schemaErr
	}
	f.schemaOK = true
	return nil
}

func (f *fakeStore) SeedUsers(_ context.Context, inputs []user.UpsertUserInput, overwrite bool) (repository.SeedResult, error) {
	var result repository.SeedResult
	for _, in := range inputs {
		switch {
		case f.existing[in.Username] && overwrite:
			result.Updated = append(result.Updated, in.Username)
		case f.existing[in.Username]:
			result.Skipped = append(result.Skipped, in.Username)
		default:
			result.Created = append(result.Created, in.Username)
		}
	}
	return result, nil
}

func TestSeed(t *testing.T) {
	inputs := []user.UpsertUserInput{
		{Username: "admin", PasswordHash: "h1", Role: user.RoleAdmin},
		{Username: "user", PasswordHash: "h2", Role: user.RoleUser},
	}

	store := &fakeStore{existing: map[string]bool{"admin": true}}
	result, err := seed(context.Background(), store, inputs, false)
	require.NoError(t, err)
	assert.True(t, store.schemaOK)
	assert.Equal(t, []string{"user"}, result.Created)
	assert.Equal(t, []string{"admin"}, result.Skipped)

	result, err = seed(context.Background(), store, inputs, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, result.Updated)

	_, err = seed(context.Background(), &fakeStore{schemaErr: errors.New("permission denied")}, inputs, false)
	assert.Error(t, err)
}

type fakeUsers map[string]string

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	hash, ok := f[username]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return &user.User{Username: username, PasswordHash: hash, Role: user.RoleUser}, nil
}

func TestStaleHashes(t *testing.T) {
	weak, err := password.HashWithCost("long-enough", password.MinCost)
	require.NoError(t, err)
	strong, err := password.HashWithCost("long-enough", password.MinCost+1)
	require.NoError(t, err)
	argon, err := password.HashArgon2("long-enough")
	require.NoError(t, err)

	users := fakeUsers{"weak": weak, "strong": strong, "argon": argon, "broken": "not-a-hash"}

	stale, err := staleHashes(context.Background(), users, []string{"weak", "strong", "argon", "broken"}, password.MinCost+1)
	require.NoError(t, err)
	assert.Equal(t, []string{"weak", "argon", "broken"}, stale)

	_, err = staleHashes(context.Background(), users, []string{"ghost"}, password.MinCost)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, repository.SeedResult{Created: []string{"user"}, Skipped: []string{"admin"}}, []string{"admin"})

	assert.Contains(t, buf.String(), "created user")
	assert.Contains(t, buf.String(), "skipped admin")
	assert.Contains(t, buf.String(), "stale admin")
	assert.Contains(t, buf.String(), "created=1 updated=0 skipped=1 stale=1")
}
