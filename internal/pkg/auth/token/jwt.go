package token

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

// ErrInvalid is returned for tokens that fail parsing or signature checks.
var ErrInvalid = fmt.Errorf("invalid token")

// ErrExpired is returned for well-formed tokens past their expiry.
var ErrExpired = fmt.Errorf("token expired")

// Claims is what a session token carries.
type Claims struct {
	UserID string
	Email  string
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager with the given secret and TTL. A zero
// ttl falls back to 24 hours.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// NewManagerFromEnv reads JWT_SECRET and optional JWT_TTL_HOURS.
func NewManagerFromEnv() (*Manager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	ttl := defaultTTL
	if raw := os.Getenv("JWT_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("JWT_TTL_HOURS must be a positive integer")
		}
		ttl = time.Duration(hours) * time.Hour
	}
	return NewManager(secret, ttl)
}

// Sign issues a token for the user.
func (m *Manager) Sign(userID, email string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	})
	return t.SignedString(m.secret)
}

// Verify parses and validates a token, returning its claims.
func (m *Manager) Verify(raw string) (*Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, ErrInvalid
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, ErrInvalid
	}
	return &Claims{UserID: sub, Email: email}, nil
}
