package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn    func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	SaveUserFn        func(ctx context.Context, user domain.User) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, filter portsrepo.UserFilter) ([]domain.User, int, error) {
	args := m.Called(ctx, filter)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Int(1), args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSession(ctx context.Context, userID string, update portsrepo.SessionUpdate) error {
	args := m.Called(ctx, userID, update)
	return args.Error(0)
}

func (m *MockUserRepository) ClearSession(ctx context.Context, userID string, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, userID, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, userID string, status domain.UserStatus, updatedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, userID, status, updatedAt, updatedBy)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock RoleRepository ---
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	var roles []domain.Role
	if args.Get(0) != nil {
		roles = args.Get(0).([]domain.Role)
	}
	return roles, args.Error(1)
}

func (m *MockRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

var _ portsrepo.RoleRepositoryFacade = (*MockRoleRepository)(nil)

// memoryUserStore is a map-backed user repository. It copies on read and
// write so callers cannot mutate stored rows in place. Its writers follow the
// same guards as the SQL repository.
type memoryUserStore struct {
	mu     sync.Mutex
	users  map[string]domain.User
	writes int
	// afterRead, when set, runs once right after the next lookup returns its
	// copy, standing in for a request that lands between a read and a write.
	afterRead func()
}

func newMemoryUserStore(users ...domain.User) *memoryUserStore {
	s := &memoryUserStore{users: make(map[string]domain.User)}
	for _, u := range users {
		s.users[u.UserID] = u
	}
	return s
}

func (s *memoryUserStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	u, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	s.fireAfterRead()
	return &u, nil
}

func (s *memoryUserStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	var found *domain.User
	for _, u := range s.users {
		if u.Email == email {
			found = &u
			break
		}
	}
	s.mu.Unlock()
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	s.fireAfterRead()
	return found, nil
}

func (s *memoryUserStore) fireAfterRead() {
	s.mu.Lock()
	hook := s.afterRead
	s.afterRead = nil
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (s *memoryUserStore) FindUsers(_ context.Context, _ portsrepo.UserFilter) ([]domain.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (s *memoryUserStore) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	existing, ok := s.users[user.UserID]
	if !ok {
		s.users[user.UserID] = user
		return nil
	}
	if !existing.IsActive() {
		return apperrors.ErrInvalidState
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.PasswordHash = user.PasswordHash
	existing.Role = user.Role
	existing.LastUpdatedAt = user.LastUpdatedAt
	existing.LastUpdatedBy = user.LastUpdatedBy
	s.users[user.UserID] = existing
	return nil
}

func (s *memoryUserStore) UpdateSession(_ context.Context, userID string, update portsrepo.SessionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !u.IsActive() {
		return apperrors.ErrInvalidState
	}
	if prev := update.PreviousRefreshTokenHash; prev != nil && (u.RefreshTokenHash == nil || *u.RefreshTokenHash != *prev) {
		return apperrors.ErrInvalidCredentials
	}
	u.StartSession(update.RefreshTokenHash, update.LastLoginAt)
	u.LastUpdatedAt = update.UpdatedAt
	u.LastUpdatedBy = update.UpdatedBy
	s.users[userID] = u
	return nil
}

func (s *memoryUserStore) ClearSession(_ context.Context, userID string, updatedAt time.Time, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.EndSession()
	u.LastUpdatedAt = updatedAt
	u.LastUpdatedBy = updatedBy
	s.users[userID] = u
	return nil
}

func (s *memoryUserStore) UpdateStatus(_ context.Context, userID string, status domain.UserStatus, updatedAt time.Time, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !u.IsActive() {
		return apperrors.ErrInvalidState
	}
	u.Status = status
	if status != domain.UserStatusActive {
		u.EndSession()
	}
	u.LastUpdatedAt = updatedAt
	u.LastUpdatedBy = updatedBy
	s.users[userID] = u
	return nil
}

func (s *memoryUserStore) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.users, userID)
	return nil
}

// put replaces a stored row wholesale, bypassing the writer guards.
func (s *memoryUserStore) put(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
}

func (s *memoryUserStore) get(userID string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID]
}

func (s *memoryUserStore) setAfterRead(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.afterRead = hook
}

var _ portsrepo.UserRepositoryFacade = (*memoryUserStore)(nil)

// fakeClock is a settable time source shared by services and the codec.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
