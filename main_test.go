package main

import (
	"context"
	"errors"
	"testing"

	"auth-service/internal/config"
	"auth-service/internal/rbac"
	"auth-service/internal/rbac/presets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchema struct {
	name  string
	err   error
	calls *[]string
}

func (f fakeSchema) EnsureSchema(context.Context) error {
	*f.calls = append(*f.calls, f.name)
	return f.err
}

func TestEnsureSchemas(t *testing.T) {
	var calls []string

	err := ensureSchemas(context.Background(),
		fakeSchema{name: "users", calls: &calls},
		fakeSchema{name: "audit_events", calls: &calls},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "audit_events"}, calls)
}

func TestEnsureSchemasStopsOnFailure(t *testing.T) {
	var calls []string
	denied := errors.New("permission denied for schema public")

	err := ensureSchemas(context.Background(),
		fakeSchema{name: "users", err: denied, calls: &calls},
		fakeSchema{name: "audit_events", calls: &calls},
	)
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, []string{"users"}, calls)
}

func TestNewBackendStatic(t *testing.T) {
	cfg := &config.Config{
		Credentials: config.CredentialsConfig{
			Source: config.CredentialSourceStatic,
			Users: []config.UserCredential{
				{Username: "admin", Password: "admin-secret", Role: "admin"},
			},
		},
	}

	b, err := newBackend(context.Background(), cfg, rbac.MustNew(presets.Default()))
	require.NoError(t, err)
	defer b.close()

	assert.NotNil(t, b.auditSink)
	principal, err := b.source.Resolve(context.Background(), "admin", "admin-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
}
