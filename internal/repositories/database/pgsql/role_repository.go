package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	"github.com/youssefkhaled23/factory-system-backend/internal/models"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils/mapping"
)

type PgxRoleRepository struct {
	BaseRepository
}

func newPgxRoleRepository(db *pgxpool.Pool) portsrepo.RoleRepositoryFacade {
	return &PgxRoleRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

const selectRole = `SELECT role_id, name, role_key, created_at, updated_at FROM roles`

func scanRole(row pgx.Row) (models.Role, error) {
	var m models.Role
	err := row.Scan(&m.RoleID, &m.Name, &m.RoleKey, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	if !isValidID(roleID) {
		return nil, apperrors.ErrNotFound
	}

	m, err := scanRole(r.Pool.QueryRow(ctx, selectRole+` WHERE role_id = $1`, roleID))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("failed to find role by ID %s", roleID))
	}
	role := mapping.ToDomainRole(m)
	return &role, nil
}

func (r *PgxRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	m, err := scanRole(r.Pool.QueryRow(ctx, selectRole+` WHERE name = $1`, name))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("failed to find role %q", name))
	}
	role := mapping.ToDomainRole(m)
	return &role, nil
}

func (r *PgxRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.Pool.Query(ctx, selectRole+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	modelRoles := []models.Role{}
	for rows.Next() {
		m, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		modelRoles = append(modelRoles, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", rows.Err())
	}

	return mapping.ToDomainRoleSlice(modelRoles), nil
}

func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	m := mapping.ToModelRole(role)
	query := `
		INSERT INTO roles (role_id, name, role_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			role_key = EXCLUDED.role_key,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query, m.RoleID, m.Name, m.RoleKey, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return classifyError(err, "failed to save role")
	}
	return nil
}
