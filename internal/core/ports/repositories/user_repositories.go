package repositories

import (
	"context"
	"time"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

// UserFilter narrows FindUsers. A zero Limit returns every matching row.
type UserFilter struct {
	Search string
	Status domain.UserStatus
	RoleID string
	Limit  int
	Offset int
}

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID, with its role resolved.
	// Returns apperrors.ErrNotFound when absent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by exact email match.
	// Returns apperrors.ErrNotFound when absent.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers returns one page of users matching the filter and the total match count.
	FindUsers(ctx context.Context, filter UserFilter) ([]domain.User, int, error)
}

// SessionUpdate is the session half of a user row written by login and refresh.
type SessionUpdate struct {
	RefreshTokenHash string
	LastLoginAt      time.Time
	// PreviousRefreshTokenHash, when set, turns the write into a swap that only
	// succeeds while the stored hash still equals it.
	PreviousRefreshTokenHash *string
	UpdatedAt                time.Time
	UpdatedBy                string
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts a new user, or updates the profile columns (name, email,
	// password hash, role) of an existing ACTIVE row. Status and session columns
	// are only changed through UpdateStatus and the session methods.
	// Returns apperrors.ErrDuplicate on an email collision and
	// apperrors.ErrInvalidState when the existing row is not ACTIVE.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateSession stores a new session on an ACTIVE user in one statement.
	// Returns apperrors.ErrNotFound when absent, apperrors.ErrInvalidState when
	// the user is not ACTIVE, and apperrors.ErrInvalidCredentials when
	// PreviousRefreshTokenHash no longer matches.
	UpdateSession(ctx context.Context, userID string, update SessionUpdate) error

	// ClearSession removes the session state. Returns apperrors.ErrNotFound when absent.
	ClearSession(ctx context.Context, userID string, updatedAt time.Time, updatedBy string) error

	// UpdateStatus moves an ACTIVE user to status, clearing the session when the
	// new status is not ACTIVE. Returns apperrors.ErrNotFound when absent and
	// apperrors.ErrInvalidState when the user is no longer ACTIVE.
	UpdateStatus(ctx context.Context, userID string, status domain.UserStatus, updatedAt time.Time, updatedBy string) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser removes the user. Returns apperrors.ErrNotFound when absent.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
