package domain

import "time"

// UserStatus is the lifecycle state of an account. Only active accounts may
// authenticate or be mutated.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// IsValid reports whether s is one of the known statuses.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive:
		return true
	}
	return false
}

// User represents an account in the domain.
//
// RefreshTokenHash and LastLoginAt are set together and cleared together;
// use StartSession and EndSession instead of assigning them.
type User struct {
	UserID           string     `json:"userID"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	RefreshTokenHash *string    `json:"-"`
	Status           UserStatus `json:"status"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
	Role             Role       `json:"role"`
	AuditFields
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// HasPassword reports whether a password hash is on record.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// StartSession records a login: the refresh-token hash and the session anchor.
func (u *User) StartSession(refreshTokenHash string, anchor time.Time) {
	u.RefreshTokenHash = &refreshTokenHash
	u.LastLoginAt = &anchor
}

// EndSession clears both halves of the session state.
func (u *User) EndSession() {
	u.RefreshTokenHash = nil
	u.LastLoginAt = nil
}

// HasSession reports whether a login is currently recorded on the user.
func (u *User) HasSession() bool {
	return u.LastLoginAt != nil
}

func (u *User) GetUserID() string { return u.UserID }
func (u *User) GetName() string { return u.Name }
func (u *User) GetEmail() string { return u.Email }
