package repositories

import (
	"context"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

type RoleReader interface {
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

type RoleWriter interface {
	// SaveRole inserts the role, or updates its key when a role with the same name exists.
	SaveRole(ctx context.Context, role domain.Role) error
}

type RoleRepositoryFacade interface {
	RoleReader
	RoleWriter
}
