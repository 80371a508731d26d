package dto

import (
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
)

type RoleResponse struct {
	RoleID  string `json:"roleID"`
	Name    string `json:"name"`
	RoleKey string `json:"roleKey"`
}

func ToRoleResponse(role domain.Role) RoleResponse {
	return RoleResponse{
		RoleID:  role.RoleID,
		Name:    role.Name,
		RoleKey: string(role.Key),
	}
}

func ToRoleResponses(roles []domain.Role) []RoleResponse {
	responses := make([]RoleResponse, len(roles))
	for i, role := range roles {
		responses[i] = ToRoleResponse(role)
	}
	return responses
}
