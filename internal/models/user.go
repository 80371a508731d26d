package models

import (
	"database/sql"
)

// User is a row of the users table joined with its role.
type User struct {
	UserID           string         `db:"user_id"`
	Name             string         `db:"name"`
	Email            string         `db:"email"`
	PasswordHash     string         `db:"password_hash"`
	RefreshTokenHash sql.NullString `db:"refresh_token_hash"`
	Status           string         `db:"status"`
	LastLogin        sql.NullTime   `db:"last_login"`
	RoleID           string         `db:"role_id"`
	AuditFields

	// Populated from the roles join on reads; ignored on writes.
	Role Role `db:"-"`
}
