package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure value for every way verification can
// fail: malformed token, bad signature, expiry. Callers must not learn why.
var ErrInvalidToken = errors.New("invalid token")

type TokenUser struct {
	ID string `json:"id"`
}

type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// MakeToken mints an HS256 token whose only claim of interest is the subject
// user id, carried as {user:{id}} alongside the registered iat/exp.
func MakeToken(secret, userID string, ttl time.Duration) (string, error) {
	c := Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies tok and returns the subject user id.
func ParseToken(secret, tok string) (string, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", ErrInvalidToken
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return "", ErrInvalidToken
	}
	uid := c.User.ID
	if uid == "" {
		uid = c.Subject
	}
	if uid == "" {
		return "", ErrInvalidToken
	}
	return uid, nil
}
