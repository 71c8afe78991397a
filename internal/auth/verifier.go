package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/openscripture/lectern/internal/domain"
)

// Verifier validates HS256 access tokens issued by the external
// identity service. The engine never mints tokens; it only checks the
// signature and extracts the subject.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a verifier for tokens signed with the shared
// secret. secret must be at least 32 characters for HS256 security.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// ValidateToken parses and validates a token, returning the user ID
// from its subject claim. Any failure maps to ErrUnauthorized.
func (v *Verifier) ValidateToken(_ context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("empty token: %w", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse token: %v: %w", err, domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}
	if claims.Issuer != v.issuer {
		return uuid.Nil, fmt.Errorf("invalid issuer %q: %w", claims.Issuer, domain.ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject: %w", domain.ErrUnauthorized)
	}

	return userID, nil
}
