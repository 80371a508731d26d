// Package seeder inserts the fixed roles and the first super-admin account.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils"
)

// SystemUserID is recorded as creator of seeded rows.
const SystemUserID = "system"

// DefaultRoles are created on every run unless a role with the same name exists.
var DefaultRoles = []struct {
	Name string
	Key  domain.RoleKey
}{
	{Name: "superadmin", Key: domain.RoleKeySuperAdmin},
	{Name: "admin", Key: domain.RoleKeyAdmin},
}

// AdminAccount describes the super-admin user to create.
type AdminAccount struct {
	Email    string
	Name     string
	Password string
}

type Seeder struct {
	roles  portsrepo.RoleRepositoryFacade
	users  portsrepo.UserRepositoryFacade
	hasher portssvc.CredentialHasher
	logger *slog.Logger
	now    func() time.Time
}

func New(roles portsrepo.RoleRepositoryFacade, users portsrepo.UserRepositoryFacade, hasher portssvc.CredentialHasher, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		roles:  roles,
		users:  users,
		hasher: hasher,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run seeds roles, then the admin. It is safe to run repeatedly.
func (s *Seeder) Run(ctx context.Context, admin AdminAccount) error {
	if err := s.SeedRoles(ctx); err != nil {
		return err
	}
	return s.SeedAdmin(ctx, admin)
}

func (s *Seeder) SeedRoles(ctx context.Context) error {
	for _, def := range DefaultRoles {
		_, err := s.roles.FindRoleByName(ctx, def.Name)
		if err == nil {
			s.logger.Info("Role already exists, skipping", slog.String("role", def.Name))
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to look up role %q: %w", def.Name, err)
		}

		now := s.now()
		role := domain.Role{
			RoleID:    uuid.NewString(),
			Name:      def.Name,
			Key:       def.Key,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.roles.SaveRole(ctx, role); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", def.Name, err)
		}
		s.logger.Info("Role seeded", slog.String("role", def.Name), slog.String("role_id", role.RoleID))
	}
	return nil
}

func (s *Seeder) SeedAdmin(ctx context.Context, admin AdminAccount) error {
	email := strings.TrimSpace(admin.Email)
	if email == "" {
		return errors.New("admin email is required")
	}

	_, err := s.users.FindUserByEmail(ctx, email)
	if err == nil {
		s.logger.Info("Admin user already exists, skipping", slog.String("email", email))
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	role, err := s.superAdminRole(ctx)
	if err != nil {
		return err
	}

	if admin.Password == "" {
		return errors.New("admin password is required")
	}
	passwordHash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := s.now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         admin.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Status:       domain.UserStatusActive,
		Role:         *role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     SystemUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: SystemUserID,
		},
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.logger.Info("Admin user seeded", slog.String("user_id", user.UserID), slog.String("email", email))
	return nil
}

func (s *Seeder) superAdminRole(ctx context.Context) (*domain.Role, error) {
	for _, def := range DefaultRoles {
		if def.Key != domain.RoleKeySuperAdmin {
			continue
		}
		role, err := s.roles.FindRoleByName(ctx, def.Name)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("super admin role %q is missing, seed roles first", def.Name)
			}
			return nil, fmt.Errorf("failed to look up super admin role: %w", err)
		}
		return role, nil
	}
	return nil, errors.New("no super admin role is defined")
}

// GeneratePassword returns a random password that satisfies the strength rules:
// 16 characters with an uppercase letter, a digit and a special character.
func GeneratePassword() (string, error) {
	random, err := utils.GenerateSecureRandomString(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate admin password: %w", err)
	}
	return "Fs" + random + "#9", nil
}
