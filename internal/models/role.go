package models

import "time"

// Role is a row of the roles table.
type Role struct {
	RoleID    string    `db:"role_id"`
	Name      string    `db:"name"`
	RoleKey   string    `db:"role_key"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
