package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/numerisys/document-system/internal/core/domain"
	"github.com/numerisys/document-system/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// TokenManager issues and verifies the stateless bearer credential.
// Tokens are HS256 JWTs carrying the user id (sub), role and expiry; validity
// is purely a function of signature and expiry, so there is no revocation.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed, time-limited credential for the given identity.
func (m *TokenManager) Issue(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify validates a credential and returns the identity it encodes.
// Bad signature, unexpected algorithm, malformed payload and expiry all
// collapse into domain.ErrInvalidToken; callers never distinguish them.
func (m *TokenManager) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{UserID: sub, Role: role}, nil
}
