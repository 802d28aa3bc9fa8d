// Package auth handles password hashing, JWT issuance, and request authentication.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10
	tokenTTL   = 7 * 24 * time.Hour
)

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash with a candidate password.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HashDummy burns a bcrypt comparison so unknown-email logins take as long
// as wrong-password ones.
func HashDummy() {
	_, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcryptCost)
}

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	UserID int `json:"userId"`
	jwt.RegisteredClaims
}

// Manager mints and verifies HS256 access tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager constructs a Manager with a 7-day token lifetime.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), ttl: tokenTTL}
}

// Mint returns a signed token for the given user id.
func (m *Manager) Mint(userID int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token for user %d: %w", userID, err)
	}
	return signed, nil
}

// Verify parses a token and returns the user id it was minted for.
func (m *Manager) Verify(token string) (int, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("parsing token: %w", err)
	}
	if !parsed.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}
