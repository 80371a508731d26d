package services

import (
	"context"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	"github.com/youssefkhaled23/factory-system-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves users matching the params, paginated unless disabled.
	ListUsers(ctx context.Context, params dto.ListUsersParams) (*dto.ListUsersResponse, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new active user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates name and email of an active user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// UpdateUserPassword replaces the password of an active user.
	UpdateUserPassword(ctx context.Context, userID string, req dto.UpdateUserPasswordRequest, requestingUserID string) (*domain.User, error)

	// UpdateUserStatus moves an active, non super-admin user to the given status.
	UpdateUserStatus(ctx context.Context, userID string, status domain.UserStatus, requestingUserID string) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	DeleteUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
