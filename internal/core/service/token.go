package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
)

// DefaultTokenTTL is the fixed validity window of issued tokens. Tokens are
// stateless: once issued they remain valid until expiry, with no server-side
// revocation.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the decoded payload of a session token. Email doubles as the
// registered subject.
type Claims struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and parses signed HS256 session tokens. It is a pure
// function of its signing key and inputs and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token embedding the identity claims plus
// issued-at and expiry.
func (s *TokenService) Issue(email, role, userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:  email,
		Role:   role,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Parse verifies signature and expiry before returning claims. It never
// returns claims from an unsigned, tampered, or expired token.
func (s *TokenService) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}
