// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const tokenIssuer = "cinemapulse"

// Claims are the JWT claims of a bearer token. The subject claim holds the
// user email.
type Claims struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. An empty secret is replaced by a random
// one, which invalidates every token on restart.
func NewTokenIssuer(secret string, ttl time.Duration, logger zerolog.Logger) (*TokenIssuer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		logger.Warn().Msg("auth.jwt_secret is empty; using a random secret, tokens will not survive a restart")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: key, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for subject and its expiry.
func (t *TokenIssuer) Issue(subject *Subject) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	claims := &Claims{
		Name:  subject.Name,
		Roles: subject.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject.Email,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Validate parses token and returns the subject it was issued for.
func (t *TokenIssuer) Validate(token string) (*Subject, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token claims")
	}

	return &Subject{
		Email:  claims.Subject,
		Name:   claims.Name,
		Roles:  claims.Roles,
		Method: MethodBearer,
	}, nil
}
