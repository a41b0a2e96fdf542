// Package auth issues and verifies the bearer token that authenticates
// user requests (spec.md §6: claim `sub`=user_id, claim `is_admin`), and
// hashes/compares account passwords.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), expiry: expiry}
}

// Generate issues a token with subject=user_id and claim is_admin, per
// spec.md §6's authenticated-route contract.
func (s *JWTService) Generate(userID uint, isAdmin bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the decoded claims
// plus the user ID parsed out of the subject.
func (s *JWTService) Verify(tokenString string) (userID uint, claims *Claims, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("parse token: %w", err)
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, nil, fmt.Errorf("invalid token")
	}
	var id uint
	if _, err := fmt.Sscanf(c.Subject, "%d", &id); err != nil {
		return 0, nil, fmt.Errorf("invalid token subject: %w", err)
	}
	return id, c, nil
}

// Refresh re-verifies a still-valid token and reissues one with a fresh
// expiry, per spec.md §6's `POST /api/auth/refresh {token} -> {token}`.
func (s *JWTService) Refresh(tokenString string) (string, error) {
	userID, claims, err := s.Verify(tokenString)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return s.Generate(userID, claims.IsAdmin)
}
