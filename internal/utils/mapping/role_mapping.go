package mapping

import (
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	"github.com/youssefkhaled23/factory-system-backend/internal/models"
)

func ToModelRole(d domain.Role) models.Role {
	return models.Role{
		RoleID:    d.RoleID,
		Name:      d.Name,
		RoleKey:   string(d.Key),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ToDomainRole(m models.Role) domain.Role {
	return domain.Role{
		RoleID:    m.RoleID,
		Name:      m.Name,
		Key:       domain.RoleKey(m.RoleKey),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToDomainRoleSlice(ms []models.Role) []domain.Role {
	ds := make([]domain.Role, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRole(m)
	}
	return ds
}
