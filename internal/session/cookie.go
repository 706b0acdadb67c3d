package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type cookieClaims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CookieStore keeps no server-side state: the token is an HS256-signed JWT
// carrying the identity. Destroy cannot revoke an issued token; logging out
// relies on the cookie being expired.
type CookieStore struct {
	secret []byte
	now    func() time.Time
}

func NewCookieStore(secret string) *CookieStore {
	return &CookieStore{secret: []byte(secret), now: time.Now}
}

func (s *CookieStore) Load(_ context.Context, token string) (Identity, error) {
	claims := &cookieClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, ErrNotFound
	}
	return Identity{ID: claims.UserID, Username: claims.Username}, nil
}

// Save signs a new token on every call
func (s *CookieStore) Save(_ context.Context, _ string, identity Identity, ttl time.Duration) (string, error) {
	now := s.now()
	claims := cookieClaims{
		UserID:   identity.ID,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

func (s *CookieStore) Destroy(context.Context, string) error {
	return nil
}
