package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
)

type sessionGuard struct {
	BaseService
	userRepo portsrepo.UserReader
	codec    portssvc.TokenCodec
}

// NewSessionGuard creates the guard that admits a request only when its access
// token belongs to the user's latest login.
func NewSessionGuard(userRepo portsrepo.UserReader, codec portssvc.TokenCodec, options ...ServiceOption) portssvc.SessionGuardSvc {
	return &sessionGuard{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
		codec:       codec,
	}
}

var _ portssvc.SessionGuardSvc = (*sessionGuard)(nil)

var errBearerMissing = errors.New("authorization header is missing")

func (g *sessionGuard) Authenticate(ctx context.Context, rawAuthorizationHeader string) (*domain.Identity, error) {
	token, err := extractBearerToken(rawAuthorizationHeader)
	if err != nil {
		if errors.Is(err, errBearerMissing) {
			return nil, domain.NewRejection(domain.RejectMissingToken, err)
		}
		return nil, domain.NewRejection(domain.RejectMalformedHeader, err)
	}

	payload, err := g.codec.VerifyAccessToken(token)
	if err != nil {
		return nil, domain.NewRejection(domain.RejectSessionExpired, err)
	}

	user, err := g.userRepo.FindUserByID(ctx, payload.SubjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.NewRejection(domain.RejectAccountUnverifiable, err)
		}
		g.LogError(ctx, err, "Failed to load user for session check", slog.String("user_id", payload.SubjectID))
		return nil, apperrors.NewInternalError("failed to verify session", err)
	}
	if !user.IsActive() {
		return nil, domain.NewRejection(domain.RejectAccountUnverifiable, fmt.Errorf("user status is %s", user.Status))
	}

	if user.LastLoginAt == nil {
		return nil, domain.NewRejection(domain.RejectLoggedOut, nil)
	}

	if payload.LastLoginAt == "" {
		return nil, domain.NewRejection(domain.RejectInvalidToken, errors.New("token carries no session anchor"))
	}
	tokenAnchor, err := strconv.ParseInt(payload.LastLoginAt.String(), 10, 64)
	if err != nil {
		return nil, domain.NewRejection(domain.RejectInvalidToken, fmt.Errorf("session anchor is not an integer: %w", err))
	}
	if tokenAnchor <= 0 {
		return nil, domain.NewRejection(domain.RejectInvalidToken, errors.New("session anchor is not positive"))
	}

	storedAnchor := user.LastLoginAt.UnixMilli()
	if storedAnchor == 0 {
		return nil, domain.NewRejection(domain.RejectInvalidToken, errors.New("stored session anchor is zero"))
	}
	if tokenAnchor != storedAnchor {
		return nil, domain.NewRejection(domain.RejectSupersededSession,
			fmt.Errorf("token anchor %d does not match current %d", tokenAnchor, storedAnchor))
	}

	g.LogDebug(ctx, "Session admitted", slog.String("user_id", payload.SubjectID))
	return &domain.Identity{
		SubjectID:   payload.SubjectID,
		Email:       payload.Email,
		RoleID:      payload.RoleID,
		LastLoginAt: tokenAnchor,
	}, nil
}

// extractBearerToken accepts exactly "Bearer <token>", scheme case-insensitive.
func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errBearerMissing
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header format must be Bearer {token}")
	}
	return parts[1], nil
}
