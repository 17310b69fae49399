// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/radiolite/internal/config"
)

// bcryptCost is used when hashing a clear-text ADMIN_PASSWORD at startup.
const bcryptCost = 12

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Token is the OAuth2-style token response.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AdminAuthenticator checks the admin credentials and issues tokens.
type AdminAuthenticator struct {
	username     string
	passwordHash []byte
	jwt          *JWTManager
}

// NewAdminAuthenticator hashes the configured password (unless it is
// already a bcrypt hash) and prepares token signing.
func NewAdminAuthenticator(cfg *config.SecurityConfig) (*AdminAuthenticator, error) {
	return newAdminAuthenticator(cfg, bcryptCost)
}

func newAdminAuthenticator(cfg *config.SecurityConfig, cost int) (*AdminAuthenticator, error) {
	if !cfg.AdminEnabled() {
		return nil, fmt.Errorf("admin username and password are required")
	}

	jwtManager, err := NewJWTManager(cfg)
	if err != nil {
		return nil, err
	}

	hash := []byte(cfg.AdminPassword)
	if !isBcryptHash(cfg.AdminPassword) {
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	return &AdminAuthenticator{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		jwt:          jwtManager,
	}, nil
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			_, err := bcrypt.Cost([]byte(s))
			return err == nil
		}
	}
	return false
}

// Login verifies credentials and issues a bearer token.
func (a *AdminAuthenticator) Login(username, password string) (*Token, error) {
	// Both comparisons always run.
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	if !usernameMatch || !passwordMatch {
		return nil, ErrInvalidCredentials
	}

	signed, expiresAt, err := a.jwt.GenerateToken(a.username, RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		ExpiresAt:   expiresAt.UTC(),
	}, nil
}

// Verify validates a token and checks it belongs to the admin.
func (a *AdminAuthenticator) Verify(tokenString string) (*Claims, error) {
	claims, err := a.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject != a.username || claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: not an admin token", ErrInvalidToken)
	}
	return claims, nil
}
