package services

import (
	"fmt"

	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/platform/config"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) (*portssvc.ServiceContainer, error) {
	hasher := utils.NewArgon2Hasher(utils.Argon2Params{
		Memory:      cfg.Argon2.MemoryKiB,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	})

	codec, err := utils.NewTokenCodec(utils.TokenCodecConfig{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		Issuer:        cfg.JWTIssuer,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build token codec: %w", err)
	}

	container := &portssvc.ServiceContainer{}

	// Guard reads the same user store the auth service writes sessions to
	container.Guard = NewSessionGuard(repos.UserRepo, codec, options...)
	container.Auth = NewAuthService(repos.UserRepo, hasher, codec, AuthConfig{
		AccessTokenTTL:  cfg.JWTAccessTTL,
		RefreshTokenTTL: cfg.JWTRefreshTTL,
		AnchorPrecision: cfg.SessionAnchorPrecision,
	}, options...)
	container.User = NewUserService(repos.UserRepo, repos.RoleRepo, hasher, options...)
	container.Role = NewRoleService(repos.RoleRepo, options...)

	return container, nil
}
