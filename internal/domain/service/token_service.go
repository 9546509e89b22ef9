package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by issued access tokens.
// Identity is the triple {id, email, role}; everything else is standard JWT metadata.
type Claims struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token asserting the given identity claims,
	// expiring exactly one hour after issuance.
	Issue(userID uuid.UUID, email string, role string) (string, error)

	// Validate checks a token string and returns its claims when the
	// signature is valid and the token has not expired.
	Validate(tokenString string) (*Claims, error)
}
