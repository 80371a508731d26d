package mapping

import (
	"database/sql"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	"github.com/youssefkhaled23/factory-system-backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Status:       string(d.Status),
		RoleID:       d.Role.RoleID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		Role:         ToModelRole(d.Role),
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash = sql.NullString{String: *d.RefreshTokenHash, Valid: true}
	}
	if d.LastLoginAt != nil {
		m.LastLogin = sql.NullTime{Time: *d.LastLoginAt, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Status:       domain.UserStatus(m.Status),
		Role:         ToDomainRole(m.Role),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if d.Role.RoleID == "" {
		d.Role.RoleID = m.RoleID
	}
	if m.RefreshTokenHash.Valid {
		hash := m.RefreshTokenHash.String
		d.RefreshTokenHash = &hash
	}
	if m.LastLogin.Valid {
		lastLogin := m.LastLogin.Time.UTC()
		d.LastLoginAt = &lastLogin
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
