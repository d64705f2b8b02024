package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every way a session token can fail verification:
// bad signature, wrong algorithm, corrupt encoding, missing subject or expiry.
var ErrInvalidToken = errors.New("invalid token")

// SessionManager issues and verifies signed session tokens.
// The signing secret is fixed at construction and never read from globals.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// SessionToken is a freshly issued bearer token with its validity window.
type SessionToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the manager that reads time from now.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	cp := *m
	cp.now = now
	return &cp
}

// TTL is the lifetime of every issued token.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for subjectID that expires ttl from now.
func (m *SessionManager) Issue(subjectID string) (SessionToken, error) {
	if subjectID == "" {
		return SessionToken{}, errors.New("empty subject")
	}
	iat := m.now()
	exp := iat.Add(m.ttl)
	claims := &Claims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(iat),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Value: s, IssuedAt: iat, ExpiresAt: exp}, nil
}

// Verify checks signature and expiry and returns the token subject.
func (m *SessionManager) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
