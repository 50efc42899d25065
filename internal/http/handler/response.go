package handler

import (
	"auth-service/internal/auth"
	"auth-service/internal/domain/user"
)

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresIn int64     `json:"expiresIn"`
	Role      user.Role `json:"role"`
}

type TokenPayload struct {
	Sub  string    `json:"sub"`
	Role user.Role `json:"role"`
	Iat  int64     `json:"iat,omitempty"`
	Exp  int64     `json:"exp"`
}

type VerifyResponse struct {
	Valid   bool         `json:"valid"`
	Payload TokenPayload `json:"payload"`
}

type ProfileResponse struct {
	Message string         `json:"message,omitempty"`
	User    user.Principal `json:"user"`
}

func payloadFromClaims(claims *auth.Claims) TokenPayload {
	p := TokenPayload{
		Sub:  claims.Subject,
		Role: claims.Role,
	}
	if claims.IssuedAt != nil {
		p.Iat = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		p.Exp = claims.ExpiresAt.Unix()
	}
	return p
}
