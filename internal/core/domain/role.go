package domain

import "time"

// RoleKey identifies the privilege class of a role.
type RoleKey string

const (
	RoleKeySuperAdmin RoleKey = "SUPER_ADMIN"
	RoleKeyAdmin      RoleKey = "ADMIN"
)

func (k RoleKey) IsValid() bool {
	return k == RoleKeySuperAdmin || k == RoleKeyAdmin
}

// Role is resolved together with the user that references it.
type Role struct {
	RoleID    string    `json:"roleID"`
	Name      string    `json:"name"`
	Key       RoleKey   `json:"roleKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r Role) IsSuperAdmin() bool {
	return r.Key == RoleKeySuperAdmin
}
