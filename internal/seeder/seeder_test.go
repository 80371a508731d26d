package seeder_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	"github.com/youssefkhaled23/factory-system-backend/internal/platform/validation"
	"github.com/youssefkhaled23/factory-system-backend/internal/seeder"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils"
)

type fakeRoleRepo struct {
	byName  map[string]domain.Role
	findErr error
}

func (r *fakeRoleRepo) FindRoleByID(_ context.Context, roleID string) (*domain.Role, error) {
	for _, role := range r.byName {
		if role.RoleID == roleID {
			return &role, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeRoleRepo) FindRoleByName(_ context.Context, name string) (*domain.Role, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	role, ok := r.byName[name]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &role, nil
}

func (r *fakeRoleRepo) ListRoles(_ context.Context) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(r.byName))
	for _, role := range r.byName {
		roles = append(roles, role)
	}
	return roles, nil
}

func (r *fakeRoleRepo) SaveRole(_ context.Context, role domain.Role) error {
	r.byName[role.Name] = role
	return nil
}

type fakeUserRepo struct {
	byEmail map[string]domain.User
}

func (r *fakeUserRepo) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.UserID == userID {
			return &user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) FindUsers(_ context.Context, _ portsrepo.UserFilter) ([]domain.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) SaveUser(_ context.Context, user domain.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) UpdateSession(_ context.Context, _ string, _ portsrepo.SessionUpdate) error {
	return nil
}

func (r *fakeUserRepo) ClearSession(_ context.Context, _ string, _ time.Time, _ string) error {
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, _ string, _ domain.UserStatus, _ time.Time, _ string) error {
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, _ string) error {
	return nil
}

func newSeeder(t *testing.T) (*seeder.Seeder, *fakeRoleRepo, *fakeUserRepo, *utils.Argon2Hasher) {
	t.Helper()
	roles := &fakeRoleRepo{byName: map[string]domain.Role{}}
	users := &fakeUserRepo{byEmail: map[string]domain.User{}}
	hasher := utils.NewArgon2Hasher(utils.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return seeder.New(roles, users, hasher, logger), roles, users, hasher
}

func TestRunSeedsRolesAndAdmin(t *testing.T) {
	ctx := context.Background()
	s, roles, users, hasher := newSeeder(t)

	err := s.Run(ctx, seeder.AdminAccount{Email: " Admin@Factory.com ", Name: "Super Admin", Password: "Admin@123"})
	require.NoError(t, err)

	require.Len(t, roles.byName, 2)
	assert.Equal(t, domain.RoleKeySuperAdmin, roles.byName["superadmin"].Key)
	assert.Equal(t, domain.RoleKeyAdmin, roles.byName["admin"].Key)

	admin, ok := users.byEmail["Admin@Factory.com"]
	require.True(t, ok, "email is stored trimmed, with its case kept")
	assert.Equal(t, domain.UserStatusActive, admin.Status)
	assert.Equal(t, roles.byName["superadmin"].RoleID, admin.Role.RoleID)
	assert.Equal(t, seeder.SystemUserID, admin.CreatedBy)
	assert.True(t, hasher.Compare("Admin@123", admin.PasswordHash))
	assert.Nil(t, admin.LastLoginAt)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, roles, users, _ := newSeeder(t)
	account := seeder.AdminAccount{Email: "admin@factory.com", Name: "Super Admin", Password: "Admin@123"}

	require.NoError(t, s.Run(ctx, account))
	firstRoles := map[string]string{}
	for name, role := range roles.byName {
		firstRoles[name] = role.RoleID
	}
	firstAdmin := users.byEmail["admin@factory.com"]

	require.NoError(t, s.Run(ctx, account))

	for name, role := range roles.byName {
		assert.Equal(t, firstRoles[name], role.RoleID, "role %s was recreated", name)
	}
	assert.Len(t, users.byEmail, 1)
	assert.Equal(t, firstAdmin.UserID, users.byEmail["admin@factory.com"].UserID)
}

func TestSeedAdminRequiresRoles(t *testing.T) {
	s, _, users, _ := newSeeder(t)

	err := s.SeedAdmin(context.Background(), seeder.AdminAccount{Email: "admin@factory.com", Password: "Admin@123"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed roles first")
	assert.Empty(t, users.byEmail)
}

func TestSeedAdminRequiresEmailAndPassword(t *testing.T) {
	ctx := context.Background()
	s, _, _, _ := newSeeder(t)
	require.NoError(t, s.SeedRoles(ctx))

	assert.EqualError(t, s.SeedAdmin(ctx, seeder.AdminAccount{Password: "Admin@123"}), "admin email is required")
	assert.EqualError(t, s.SeedAdmin(ctx, seeder.AdminAccount{Email: "admin@factory.com"}), "admin password is required")
}

func TestSeedRolesPropagatesLookupFailure(t *testing.T) {
	s, roles, _, _ := newSeeder(t)
	roles.findErr = errors.New("connection refused")

	err := s.SeedRoles(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, roles.findErr)
	assert.Empty(t, roles.byName)
}

func TestGeneratePasswordIsStrong(t *testing.T) {
	first, err := seeder.GeneratePassword()
	require.NoError(t, err)
	second, err := seeder.GeneratePassword()
	require.NoError(t, err)

	assert.Len(t, first, 16)
	assert.True(t, validation.IsStrongPassword(first))
	assert.NotEqual(t, first, second)
}
