// Package utils provides general-purpose helper utilities used across the
// sync engine: JWT token generation and inspection, and UUID-based id
// generation for locally-created records.
package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken creates a signed HMAC-SHA256 JWT with the standard claims
// iss, sub, iat and exp. Used by the development mock server; the production
// transport receives its token from the authentication layer.
func GenerateToken(issuer, subject string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || subject == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken parses a signed HMAC-SHA256 JWT, validates its signature and
// expiration against signKey, and returns the "sub" claim. Expired tokens
// surface jwt.ErrTokenExpired through the returned error chain.
func VerifyToken(tokenString, signKey string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(signKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

// SubjectFromToken extracts the "sub" claim from a JWT without verifying the
// signature. The engine uses it to derive the sync-manager identity from an
// access token; signature verification belongs to the issuing server.
func SubjectFromToken(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("token subject: %w", err)
	}
	if sub == "" {
		return "", errors.New("token has empty subject")
	}

	return sub, nil
}
