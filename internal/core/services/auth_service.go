package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
)

// AuthConfig holds the session settings the auth service needs.
type AuthConfig struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// AnchorPrecision is the floor applied to the login time before it becomes
	// the session anchor. It must be at least as coarse as the user store keeps
	// timestamps, or tokens will never match the re-read value.
	AnchorPrecision time.Duration
}

type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	hasher   portssvc.CredentialHasher
	codec    portssvc.TokenCodec
	cfg      AuthConfig
}

// NewAuthService creates the service behind login, logout, refresh and profile.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	hasher portssvc.CredentialHasher,
	codec portssvc.TokenCodec,
	cfg AuthConfig,
	options ...ServiceOption,
) portssvc.AuthSvcFacade {
	if cfg.AnchorPrecision <= 0 {
		cfg.AnchorPrecision = time.Millisecond
	}
	return &authService{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
		hasher:      hasher,
		codec:       codec,
		cfg:         cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login attempt for unknown email")
			return nil, apperrors.NewNotFoundError("user not found")
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, apperrors.NewInternalError("failed to log in", err)
	}

	if !user.IsActive() {
		s.LogWarn(ctx, "Login attempt for inactive user", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInvalidStateError("account is not active")
	}
	if !user.HasPassword() {
		s.LogWarn(ctx, "Login attempt for user without password", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInvalidStateError("no password is set for this account")
	}

	if !s.hasher.Compare(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInvalidCredentialsError("invalid email or password")
	}

	now := s.Now()
	anchor := s.normalizeAnchor(now)

	pair, err := s.issueTokens(user, anchor)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue tokens", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalError("failed to log in", err)
	}

	refreshHash, err := s.hasher.Hash(pair.RefreshToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash refresh token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalError("failed to log in", err)
	}

	err = s.userRepo.UpdateSession(ctx, user.UserID, portsrepo.SessionUpdate{
		RefreshTokenHash: refreshHash,
		LastLoginAt:      anchor,
		UpdatedAt:        now,
		UpdatedBy:        user.UserID,
	})
	if err != nil {
		return nil, s.sessionWriteError(ctx, err, user.UserID, "failed to log in")
	}
	user.StartSession(refreshHash, anchor)
	user.LastUpdatedAt = now
	user.LastUpdatedBy = user.UserID

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &domain.LoginResult{Tokens: *pair, User: *user}, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearSession(ctx, userID, s.Now(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Logout for unknown user", slog.String("user_id", userID))
			return apperrors.NewNotFoundError("user not found")
		}
		s.LogError(ctx, err, "Failed to clear session", slog.String("user_id", userID))
		return apperrors.NewInternalError("failed to log out", err)
	}

	s.LogInfo(ctx, "User logged out", slog.String("user_id", userID))
	return nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	payload, err := s.codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.LogWarn(ctx, "Refresh token rejected", slog.String("reason", err.Error()))
		if errors.Is(err, apperrors.ErrExpiredToken) {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "refresh token has expired", err)
		}
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid refresh token", err)
	}

	user, err := s.findUser(ctx, payload.SubjectID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		s.LogWarn(ctx, "Refresh attempt for inactive user", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInvalidStateError("account is not active")
	}
	if user.RefreshTokenHash == nil || user.LastLoginAt == nil {
		s.LogWarn(ctx, "Refresh attempt without an active session", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInvalidStateError("no active session, please log in")
	}
	if !s.hasher.Compare(refreshToken, *user.RefreshTokenHash) {
		s.LogWarn(ctx, "Refresh token does not match stored hash", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInvalidCredentialsError("refresh token is no longer valid")
	}

	// Same login event: the anchor comes from the record, not the clock.
	anchor := s.normalizeAnchor(*user.LastLoginAt)

	pair, err := s.issueTokens(user, anchor)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue tokens", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalError("failed to refresh token", err)
	}

	refreshHash, err := s.hasher.Hash(pair.RefreshToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash refresh token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewInternalError("failed to refresh token", err)
	}

	err = s.userRepo.UpdateSession(ctx, user.UserID, portsrepo.SessionUpdate{
		RefreshTokenHash:         refreshHash,
		LastLoginAt:              anchor,
		PreviousRefreshTokenHash: user.RefreshTokenHash,
		UpdatedAt:                s.Now(),
		UpdatedBy:                user.UserID,
	})
	if err != nil {
		return nil, s.sessionWriteError(ctx, err, user.UserID, "failed to refresh token")
	}

	s.LogInfo(ctx, "Refresh token rotated", slog.String("user_id", user.UserID))
	return pair, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.findUser(ctx, userID)
}

func (s *authService) findUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "User not found", slog.String("user_id", userID))
			return nil, apperrors.NewNotFoundError("user not found")
		}
		s.LogError(ctx, err, "Failed to look up user", slog.String("user_id", userID))
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}
	return user, nil
}

// sessionWriteError maps a rejected session write. The guarded update fails
// when the account was deactivated or the refresh token rotated after the read.
func (s *authService) sessionWriteError(ctx context.Context, err error, userID, failure string) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogWarn(ctx, "User vanished before session write", slog.String("user_id", userID))
		return apperrors.NewNotFoundError("user not found")
	case errors.Is(err, apperrors.ErrInvalidState):
		s.LogWarn(ctx, "Account deactivated before session write", slog.String("user_id", userID))
		return apperrors.NewInvalidStateError("account is not active")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		s.LogWarn(ctx, "Refresh token rotated concurrently", slog.String("user_id", userID))
		return apperrors.NewInvalidCredentialsError("refresh token is no longer valid")
	}
	s.LogError(ctx, err, "Failed to persist session", slog.String("user_id", userID))
	return apperrors.NewInternalError(failure, err)
}

func (s *authService) issueTokens(user *domain.User, anchor time.Time) (*domain.TokenPair, error) {
	accessToken, accessExpiresAt, err := s.codec.SignAccessToken(domain.AccessTokenPayload{
		SubjectID:   user.UserID,
		Email:       user.Email,
		RoleID:      user.Role.RoleID,
		LastLoginAt: domain.AnchorFromTime(anchor),
	}, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := s.codec.SignRefreshToken(domain.RefreshTokenPayload{
		SubjectID: user.UserID,
		Email:     user.Email,
	}, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}

func (s *authService) normalizeAnchor(t time.Time) time.Time {
	return t.UTC().Truncate(s.cfg.AnchorPrecision)
}
