package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Principal is the authenticated caller. It is never persisted.
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// CredentialRecord is the stored form of a login. PasswordVerifier is either a
// plaintext value (static source) or an encoded hash (persistent source).
type CredentialRecord struct {
	Username         string
	PasswordVerifier string
	Role             Role
}

func (r CredentialRecord) Principal() Principal {
	return Principal{Username: r.Username, Role: r.Role}
}

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Credential() CredentialRecord {
	return CredentialRecord{
		Username:         u.Username,
		PasswordVerifier: u.PasswordHash,
		Role:             u.Role,
	}
}

type UpsertUserInput struct {
	Username     string
	PasswordHash string
	Role         Role
}
