package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("could not validate credentials")

// TokenManager issues and verifies HS256 bearer tokens. The subject claim
// carries the user's email; downstream code resolves the identity from it
// and does not re-derive anything else from the token.
type TokenManager interface {
	Issue(email string) (string, error)
	Verify(token string) (email string, err error)
}

func NewTokenManager(secret string, tokenTTL time.Duration) TokenManager {
	return &tokenManager{secret: []byte(secret), tokenTTL: tokenTTL}
}

type tokenManager struct {
	secret   []byte
	tokenTTL time.Duration
}

func (m *tokenManager) Issue(email string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *tokenManager) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return m.secret, nil
		})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
