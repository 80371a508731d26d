package dto

import (
	"time"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils/pagination"
)

// CreateUserRequest is the body of POST /users/add.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Ahmed Hassan"`
	Email    string `json:"email" binding:"required,email,max=255" example:"ahmed@example.com"`
	Password string `json:"password" binding:"required,strongpassword" example:"StrongPass1!"`
	RoleID   string `json:"roleId" binding:"required,uuid"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
// Password and RoleID are accepted only so the service can refuse them explicitly.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty"`
	RoleID   *string `json:"roleId,omitempty"`
}

// UpdateUserPasswordRequest is the body of PATCH /users/:id/update-password.
type UpdateUserPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,strongpassword"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Search        string `form:"querySearch" binding:"omitempty,max=100"`
	Status        string `form:"status" binding:"omitempty,userstatus"`
	RoleID        string `form:"roleId" binding:"omitempty,uuid"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	HasPagination *bool  `form:"hasPagination"`
}

// PageRequest converts the query into a pagination request.
func (p ListUsersParams) PageRequest() pagination.Request {
	return pagination.Request{
		Page:     p.Page,
		Limit:    p.Limit,
		Disabled: p.HasPagination != nil && !*p.HasPagination,
	}
}

type UserResponse struct {
	UserID      string       `json:"userID"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Status      string       `json:"status"`
	LastLoginAt *time.Time   `json:"lastLoginAt,omitempty"`
	Role        RoleResponse `json:"role"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.GetUserID(),
		Name:        user.GetName(),
		Email:       user.GetEmail(),
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		Role:        ToRoleResponse(user.Role),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.LastUpdatedAt,
	}
}

// ListUsersResponse wraps the list of users. Pagination is null when disabled.
type ListUsersResponse struct {
	Results    []UserResponse   `json:"results"`
	Pagination *pagination.Meta `json:"pagination"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User, meta *pagination.Meta) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Results:    userResponses,
		Pagination: meta,
	}
}
