package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

// TTLs used when a caller signs without an explicit ttl.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenCodecConfig carries the two signing secrets. They must differ so that
// one token class can never be verified as the other.
type TokenCodecConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
}

type accessClaims struct {
	Email       string      `json:"email"`
	RoleID      string      `json:"roleId"`
	LastLoginAt json.Number `json:"lastLoginAt,omitempty"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTTokenCodec signs HS256 tokens. It holds no mutable state and is safe for concurrent use.
type JWTTokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	now           func() time.Time
}

// NewTokenCodec creates a codec. now defaults to time.Now when nil.
func NewTokenCodec(cfg TokenCodecConfig, now func() time.Time) (*JWTTokenCodec, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token codec: access and refresh secrets are required")
	}
	if now == nil {
		now = time.Now
	}
	return &JWTTokenCodec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		now:           now,
	}, nil
}

// SignAccessToken signs payload with the access secret.
func (c *JWTTokenCodec) SignAccessToken(payload domain.AccessTokenPayload, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	registered, expiresAt := c.registeredClaims(payload.SubjectID, ttl)
	claims := accessClaims{
		Email:            payload.Email,
		RoleID:           payload.RoleID,
		LastLoginAt:      payload.LastLoginAt,
		RegisteredClaims: registered,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: failed to sign access token: %w", apperrors.ErrInternal, err)
	}
	return signed, expiresAt, nil
}

// SignRefreshToken signs payload with the refresh secret.
func (c *JWTTokenCodec) SignRefreshToken(payload domain.RefreshTokenPayload, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = DefaultRefreshTokenTTL
	}
	registered, expiresAt := c.registeredClaims(payload.SubjectID, ttl)
	claims := refreshClaims{
		Email:            payload.Email,
		RegisteredClaims: registered,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.refreshSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: failed to sign refresh token: %w", apperrors.ErrInternal, err)
	}
	return signed, expiresAt, nil
}

// VerifyAccessToken validates signature, algorithm and expiry against the access secret.
func (c *JWTTokenCodec) VerifyAccessToken(token string) (*domain.AccessTokenPayload, error) {
	claims := &accessClaims{}
	if err := c.parse(token, claims, c.accessSecret); err != nil {
		return nil, err
	}
	return &domain.AccessTokenPayload{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		RoleID:      claims.RoleID,
		LastLoginAt: claims.LastLoginAt,
	}, nil
}

// VerifyRefreshToken validates signature, algorithm and expiry against the refresh secret.
func (c *JWTTokenCodec) VerifyRefreshToken(token string) (*domain.RefreshTokenPayload, error) {
	claims := &refreshClaims{}
	if err := c.parse(token, claims, c.refreshSecret); err != nil {
		return nil, err
	}
	return &domain.RefreshTokenPayload{
		SubjectID: claims.Subject,
		Email:     claims.Email,
	}, nil
}

func (c *JWTTokenCodec) registeredClaims(subject string, ttl time.Duration) (jwt.RegisteredClaims, time.Time) {
	now := c.now()
	expiresAt := now.Add(ttl)
	return jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}, expiresAt
}

func (c *JWTTokenCodec) parse(token string, claims jwt.Claims, secret []byte) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %w", apperrors.ErrExpiredToken, err)
		}
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return fmt.Errorf("%w: subject missing", apperrors.ErrInvalidToken)
	}
	return nil
}
