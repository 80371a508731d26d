package services

import (
	"context"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

type RoleSvcFacade interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	GetRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
}
