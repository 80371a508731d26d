package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
)

type roleService struct {
	BaseService
	roleRepo portsrepo.RoleReader
}

func NewRoleService(roleRepo portsrepo.RoleReader, options ...ServiceOption) portssvc.RoleSvcFacade {
	return &roleService{
		BaseService: newBaseService(options...),
		roleRepo:    roleRepo,
	}
}

var _ portssvc.RoleSvcFacade = (*roleService)(nil)

func (s *roleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roleRepo.ListRoles(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list roles")
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *roleService) GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := s.roleRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("role not found")
		}
		s.LogError(ctx, err, "Failed to get role", slog.String("role_id", roleID))
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}
