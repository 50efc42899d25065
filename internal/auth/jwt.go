package auth

import (
	"errors"
	"fmt"
	"time"

	"auth-service/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Callers outside this package should not surface
// them to clients; the gate collapses all of them into one public error.
var (
	ErrMalformedToken    = errors.New("malformed token")
	ErrInvalidSignature  = errors.New("invalid token signature")
	ErrExpiredToken      = errors.New("token expired")
	ErrIncompletePayload = errors.New("token payload missing required fields")
	ErrInvalidToken      = errors.New("invalid token")
)

type Claims struct {
	Role user.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() user.Principal {
	return user.Principal{Username: c.Subject, Role: c.Role}
}

type IssuedToken struct {
	Token     string
	ExpiresIn int64
}

// TokenService issues and verifies HS256 tokens signed with a shared secret.
// It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for both issuance and verification.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenService) Issue(p user.Principal) (IssuedToken, error) {
	if p.Username == "" || p.Role == "" {
		return IssuedToken{}, fmt.Errorf("%w: %s", ErrIncompletePayload, msgIssueIncomplete)
	}

	now := s.now()
	claims := Claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf(msgSignTokenFailedFmt, err)
	}

	return IssuedToken{
		Token:     signed,
		ExpiresIn: int64(s.ttl / time.Second),
	}, nil
}

func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrIncompletePayload
	}

	return claims, nil
}

// classify maps library errors onto this package's verification failures,
// keeping the original error for logs.
func classify(err error) error {
	var kind error
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		kind = ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		kind = ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		kind = ErrIncompletePayload
	default:
		kind = ErrInvalidToken
	}
	return fmt.Errorf("%w: %v", kind, err)
}
