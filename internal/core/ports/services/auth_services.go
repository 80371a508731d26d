package services

import (
	"context"
	"time"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

// CredentialHasher hashes passwords and refresh tokens at rest.
type CredentialHasher interface {
	// Hash returns a self-describing encoded hash with a fresh random salt.
	Hash(plaintext string) (string, error)
	// Compare reports whether plaintext matches hashed, in constant time.
	// A malformed hash never matches.
	Compare(plaintext, hashed string) bool
}

// TokenCodec signs and verifies access and refresh tokens under independent secrets.
// Verification errors wrap apperrors.ErrInvalidToken or apperrors.ErrExpiredToken.
type TokenCodec interface {
	SignAccessToken(payload domain.AccessTokenPayload, ttl time.Duration) (string, time.Time, error)
	SignRefreshToken(payload domain.RefreshTokenPayload, ttl time.Duration) (string, time.Time, error)
	VerifyAccessToken(token string) (*domain.AccessTokenPayload, error)
	VerifyRefreshToken(token string) (*domain.RefreshTokenPayload, error)
}

// AuthSvcFacade orchestrates login, logout, token refresh and profile lookup.
type AuthSvcFacade interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Logout(ctx context.Context, userID string) error
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
}

// SessionGuardSvc decides whether a request carrying the given Authorization
// header belongs to the user's current session.
type SessionGuardSvc interface {
	// Authenticate returns the verified identity, or a *domain.Rejection.
	// Any other error is a store failure.
	Authenticate(ctx context.Context, rawAuthorizationHeader string) (*domain.Identity, error)
}
