package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenManager issues and validates HS256 session tokens.
type tokenManager struct {
	secret []byte
	ttl    time.Duration
}

func newTokenManager(secret []byte, ttl time.Duration) (tokenManager, error) {
	if len(secret) == 0 {
		return tokenManager{}, errors.New("jwt secret required")
	}
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return tokenManager{secret: secret, ttl: ttl}, nil
}

func (m tokenManager) issue(userID, role string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// validate returns the subject of a valid token. Expiry is enforced by the
// jwt library via the exp claim.
func (m tokenManager) validate(tokenString string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
