// Package token issues and verifies the signed session credentials handed
// out on signup and login. Tokens are stateless: validity is purely a
// function of signature and expiry, so logout never touches this package.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sharvari/wardrobe-backend/internal/domain"
)

const defaultTTL = 7 * 24 * time.Hour

type Service struct {
	key []byte
	ttl time.Duration
}

func NewService(key []byte) *Service {
	return &Service{key: key, ttl: defaultTTL}
}

// Issue signs a token binding userID, expiring seven days out.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user ID the token was issued for, or
// domain.ErrTokenInvalid for anything malformed, expired, or signed with
// the wrong key or method.
func (s *Service) Verify(raw string) (string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil || !t.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrTokenInvalid
	}
	return userID, nil
}
