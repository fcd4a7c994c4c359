package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/kv"
)

const jwtSecretSlotKey = "jwt_secret"

// Claims are the JWT claims for a dashboard session.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// GenerateOrLoadSecret returns the JWT signing secret.
// Priority: envSecret (from JWT_SECRET) > persisted slot > auto-generate.
func GenerateOrLoadSecret(ctx context.Context, slots kv.Store, envSecret string) ([]byte, error) {
	if envSecret != "" {
		return base64.StdEncoding.DecodeString(envSecret)
	}

	val, err := slots.Get(ctx, jwtSecretSlotKey)
	if err != nil {
		return nil, err
	}
	if val != nil {
		return base64.StdEncoding.DecodeString(string(val))
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate jwt secret: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(secret)
	if err := slots.Set(ctx, jwtSecretSlotKey, []byte(encoded)); err != nil {
		return nil, err
	}
	return secret, nil
}

// IssueToken creates a signed JWT for the user.
func IssueToken(secret []byte, user *domain.User, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: user.Email,
		Name:  user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, exp, nil
}

// ValidateToken verifies a JWT and returns the claims.
func ValidateToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse jwt: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid jwt claims")
	}
	return claims, nil
}
