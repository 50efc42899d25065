package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"shape", InvalidRequestShape("bad body"), http.StatusBadRequest},
		{"credentials", InvalidCredentials(), http.StatusUnauthorized},
		{"header", MissingOrMalformedHeader(), http.StatusUnauthorized},
		{"token", InvalidOrExpiredToken(errors.New("expired")), http.StatusUnauthorized},
		{"unauthenticated", Unauthenticated(), http.StatusUnauthorized},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"not found", NotFound("user not found"), http.StatusNotFound},
		{"internal", InternalServer("db down", errors.New("dial tcp")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("resolve: %w", InvalidCredentials()), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Invalid credentials.", PublicMessage(InvalidCredentials()))
	assert.Equal(t, "Invalid or expired token.", PublicMessage(InvalidOrExpiredToken(errors.New("signature is invalid"))))
	assert.Equal(t, "Internal server error", PublicMessage(InternalServer("failed to get user", errors.New("password=hunter2"))))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw failure")))
}

func TestInvalidOrExpiredTokenKeepsCause(t *testing.T) {
	cause := errors.New("token is expired")
	err := InvalidOrExpiredToken(cause)

	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	assert.ErrorIs(t, err, cause)
}

func TestCode(t *testing.T) {
	assert.Equal(t, "INVALID_CREDENTIALS", Code(InvalidCredentials()))
	assert.Equal(t, "FORBIDDEN", Code(fmt.Errorf("guard: %w", Forbidden("no"))))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", Code(errors.New("boom")))
}
