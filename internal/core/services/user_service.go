package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/dto"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils/pagination"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	roleRepo portsrepo.RoleReader
	hasher   portssvc.CredentialHasher
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	roleRepo portsrepo.RoleReader,
	hasher portssvc.CredentialHasher,
	options ...ServiceOption,
) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		hasher:      hasher,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	email := strings.TrimSpace(req.Email)

	_, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		s.LogWarn(ctx, "Attempted to create user with existing email")
		return nil, apperrors.NewConflictError("a user with this email already exists")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check email uniqueness")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	role, err := s.roleRepo.FindRoleByID(ctx, req.RoleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("role not found")
		}
		s.LogError(ctx, err, "Failed to look up role", slog.String("role_id", req.RoleID))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Status:       domain.UserStatusActive,
		Role:         *role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a user with this email already exists")
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("created_by", creatorUserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "User not found", slog.String("user_id", userID))
			return nil, apperrors.NewNotFoundError("user not found")
		}
		s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) (*dto.ListUsersResponse, error) {
	page := params.PageRequest()
	filter := portsrepo.UserFilter{
		Search: params.Search,
		Status: domain.UserStatus(params.Status),
		RoleID: params.RoleID,
	}
	if !page.Disabled {
		page = page.Normalize()
		filter.Limit = page.Limit
		filter.Offset = page.Offset()
	}

	users, total, err := s.userRepo.FindUsers(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var meta *pagination.Meta
	if !page.Disabled {
		meta = pagination.NewMeta(page, total)
	}
	resp := dto.ToListUserResponse(users, meta)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if req.Password != nil {
		return nil, apperrors.NewBadRequestError("password cannot be changed here, use update-password")
	}
	if req.RoleID != nil {
		return nil, apperrors.NewBadRequestError("role cannot be changed")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, apperrors.NewInvalidStateError("user is not active")
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != user.Name {
			user.Name = name
			updated = true
		}
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != user.Email {
			existing, err := s.userRepo.FindUserByEmail(ctx, email)
			if err == nil && existing.UserID != user.UserID {
				return nil, apperrors.NewConflictError("a user with this email already exists")
			}
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to check email uniqueness", slog.String("user_id", userID))
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
			user.Email = email
			updated = true
		}
	}

	if !updated {
		return user, nil
	}

	user.LastUpdatedAt = s.Now()
	user.LastUpdatedBy = requestingUserID
	if err := s.save(ctx, user, "failed to update user"); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID), slog.String("updated_by", requestingUserID))
	return user, nil
}

func (s *userService) UpdateUserPassword(ctx context.Context, userID string, req dto.UpdateUserPasswordRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, apperrors.NewInvalidStateError("user is not active")
	}

	passwordHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password", slog.String("user_id", userID))
		return nil, apperrors.NewInternalError("failed to update password", err)
	}

	user.PasswordHash = passwordHash
	user.LastUpdatedAt = s.Now()
	user.LastUpdatedBy = requestingUserID
	if err := s.save(ctx, user, "failed to update password"); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User password updated", slog.String("user_id", userID), slog.String("updated_by", requestingUserID))
	return user, nil
}

func (s *userService) UpdateUserStatus(ctx context.Context, userID string, status domain.UserStatus, requestingUserID string) (*domain.User, error) {
	if !status.IsValid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown status %q", status))
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role.IsSuperAdmin() {
		return nil, apperrors.NewConflictError("the status of a super admin cannot be changed")
	}
	if !user.IsActive() {
		return nil, apperrors.NewInvalidStateError("user is not active")
	}

	now := s.Now()
	if err := s.userRepo.UpdateStatus(ctx, userID, status, now, requestingUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFoundError("user not found")
		case errors.Is(err, apperrors.ErrInvalidState):
			s.LogWarn(ctx, "User deactivated concurrently", slog.String("user_id", userID))
			return nil, apperrors.NewInvalidStateError("user is not active")
		}
		s.LogError(ctx, err, "Failed to update user status", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	user.Status = status
	if status != domain.UserStatusActive {
		user.EndSession()
	}
	user.LastUpdatedAt = now
	user.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "User status updated",
		slog.String("user_id", userID),
		slog.String("status", string(status)),
		slog.String("updated_by", requestingUserID))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("user not found")
		}
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) save(ctx context.Context, user *domain.User, failure string) error {
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.NewConflictError("a user with this email already exists")
		}
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.LogWarn(ctx, "User deactivated concurrently", slog.String("user_id", user.UserID))
			return apperrors.NewInvalidStateError("user is not active")
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return fmt.Errorf("%s: %w", failure, err)
	}
	return nil
}
